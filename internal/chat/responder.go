package chat

import (
	"fmt"
	"strings"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

// Responder answers follow-up questions about a completed generation run.
// Routing is keyword based; every answer is derived from the run's own
// records so it stays truthful without another model call.
type Responder struct{}

func NewResponder() *Responder {
	return &Responder{}
}

// Respond matches the message against known question categories and
// renders an answer from the result. Unrecognized messages get a run
// summary rather than an error.
func (r *Responder) Respond(message string, result *models.PipelineResult) string {
	if result == nil {
		return "No analysis is loaded yet. Generate content first, then ask me about the results."
	}

	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "score", "rating", "how good", "quality"):
		return r.scoreAnswer(result)
	case containsAny(lower, "improve", "better", "fix", "recommend"):
		return r.improvementAnswer(result)
	case containsAny(lower, "research", "reddit", "pain point", "customers", "audience"):
		return r.researchAnswer(result)
	case containsAny(lower, "eeat", "e-e-a-t", "trust", "expertise", "authority"):
		return r.eeatAnswer(result)
	default:
		return r.summaryAnswer(result)
	}
}

func (r *Responder) scoreAnswer(result *models.PipelineResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The content scored %.1f/10 overall.\n\n", result.Quality.OverallScore)
	if result.Quality.PerformancePrediction != "" {
		fmt.Fprintf(&b, "Prediction: %s\n", result.Quality.PerformancePrediction)
	}
	if result.Quality.TrafficMultiplierEstimate != "" {
		fmt.Fprintf(&b, "Estimated traffic potential: %s\n", result.Quality.TrafficMultiplierEstimate)
	}
	fmt.Fprintf(&b, "\nE-E-A-T came in at %.1f/10.", result.EEAT.OverallScore)
	return b.String()
}

func (r *Responder) improvementAnswer(result *models.PipelineResult) string {
	improvements := result.Quality.CriticalImprovements
	if len(improvements) == 0 {
		improvements = result.EEAT.ImprovementRecommendations
	}
	if len(improvements) == 0 {
		return "No critical improvements were flagged for this draft. Review it against your brand voice before publishing."
	}

	var b strings.Builder
	b.WriteString("Here is where the draft needs work:\n")
	for i, item := range improvements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}

func (r *Responder) researchAnswer(result *models.PipelineResult) string {
	research := result.Research
	var b strings.Builder
	fmt.Fprintf(&b, "Research covered %d posts and %d comments (source: %s, quality %.0f/100).\n\n",
		research.PostsAnalyzed, research.CommentsAnalyzed, research.SourceTag, research.ResearchQualityScore)

	top := research.TopPainPoints(3)
	if len(top) > 0 {
		b.WriteString("Top pain points:\n")
		for _, label := range top {
			fmt.Fprintf(&b, "- %s (mentioned %d times)\n", label, research.PainPoints[label])
		}
	}
	if len(research.FrequentQuestions) > 0 {
		b.WriteString("\nQuestions your audience is asking:\n")
		for _, q := range research.FrequentQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	return b.String()
}

func (r *Responder) eeatAnswer(result *models.PipelineResult) string {
	eeat := result.EEAT
	var b strings.Builder
	fmt.Fprintf(&b, "E-E-A-T assessment: %.1f/10", eeat.OverallScore)
	if eeat.IsYMYL {
		b.WriteString(" (YMYL topic, so trust and expertise are weighted heavier)")
	}
	b.WriteString("\n\nComponent scores:\n")
	for _, key := range []string{
		models.EEATExperience,
		models.EEATExpertise,
		models.EEATAuthoritativeness,
		models.EEATTrustworthiness,
	} {
		fmt.Fprintf(&b, "- %s: %.1f/10\n", strings.ReplaceAll(key, "_", " "), eeat.ComponentScores[key])
	}
	if len(eeat.ImprovementRecommendations) > 0 {
		b.WriteString("\nTo raise the score:\n")
		for _, rec := range eeat.ImprovementRecommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}
	return b.String()
}

func (r *Responder) summaryAnswer(result *models.PipelineResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This run produced a %s on %q: %d words, quality %.1f/10, E-E-A-T %.1f/10.\n",
		strings.ReplaceAll(string(result.Document.ContentType), "_", " "),
		result.Request.Topic,
		result.Document.WordCount,
		result.Quality.OverallScore,
		result.EEAT.OverallScore)
	fmt.Fprintf(&b, "Research source: %s. ", result.Research.SourceTag)
	if n := result.Status.FallbackCount(); n > 0 {
		fmt.Fprintf(&b, "%d pipeline stage(s) ran in fallback mode. ", n)
	}
	b.WriteString("Ask me about the score, the research, E-E-A-T, or how to improve the draft.")
	return b.String()
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
