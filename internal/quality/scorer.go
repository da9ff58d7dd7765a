package quality

import (
	"context"
	"fmt"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

const rubricPrompt = `Score the following content against this weighted rubric (each factor 0-10):
- authenticity: 25%%
- emotional_connection: 20%%
- industry_insight: 20%%
- accuracy: 15%%
- originality: 10%%
- contextual_relevance: 10%%

Topic: %s
Industry: %s
Human input was provided: %t
E-E-A-T overall: %.1f/10

Content:
%s

Respond in JSON format:
{
  "overall_score": <0-10>,
  "performance_prediction": "<one sentence>",
  "traffic_multiplier_estimate": "<e.g. 2-3x baseline>",
  "critical_improvements": ["<improvement>", "..."]
}`

// Heuristic scoring constants used when the model path is unavailable
const (
	heuristicBaseWithHumanInput = 7.0
	heuristicBaseWithout        = 4.0
	maxOverallScore             = 10.0
)

// Scorer assesses generated documents, preferring the model rubric and
// falling back to a word-count/structure heuristic.
type Scorer struct {
	gateway ai.Gateway
	log     *logger.Logger
}

// NewScorer creates a quality scorer. gateway may be nil, forcing the
// heuristic path.
func NewScorer(gateway ai.Gateway, log *logger.Logger) *Scorer {
	return &Scorer{
		gateway: gateway,
		log:     log.WithComponent("quality"),
	}
}

// Score asks the model for a rubric assessment. On any failure it returns
// the heuristic assessment along with the error so the orchestrator can
// record the degradation.
func (s *Scorer) Score(ctx context.Context, doc models.GeneratedDocument, topic string, business models.BusinessContext, human models.HumanInputs, eeat models.EEATAssessment) (models.QualityAssessment, error) {
	assessment, err := s.scoreLLM(ctx, doc, topic, business, human, eeat)
	if err != nil {
		s.log.Warn().Err(err).Msg("Rubric scoring failed, using heuristic")
		return HeuristicScore(doc, human), err
	}
	return assessment, nil
}

func (s *Scorer) scoreLLM(ctx context.Context, doc models.GeneratedDocument, topic string, business models.BusinessContext, human models.HumanInputs, eeat models.EEATAssessment) (models.QualityAssessment, error) {
	if s.gateway == nil {
		return models.QualityAssessment{}, ai.ErrUpstreamUnavailable
	}

	body := doc.BodyText
	// Keep the scoring prompt within a sane budget; the opening of a
	// document is enough signal for the rubric.
	const maxBodyChars = 12000
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	prompt := fmt.Sprintf(rubricPrompt,
		topic,
		business.Industry,
		human.HasContent(),
		eeat.OverallScore,
		body,
	)

	response, err := s.gateway.GenerateJSON(ctx, prompt)
	if err != nil {
		return models.QualityAssessment{}, err
	}

	var assessment models.QualityAssessment
	if err := ai.ParseJSON(response, &assessment); err != nil {
		s.log.Warn().Err(err).Str("response", response).Msg("Failed to parse quality response")
		return models.QualityAssessment{}, err
	}

	if assessment.OverallScore < 0 {
		assessment.OverallScore = 0
	}
	if assessment.OverallScore > maxOverallScore {
		assessment.OverallScore = maxOverallScore
	}
	return assessment, nil
}

// HeuristicScore derives a quality assessment from document structure alone.
// Base 7 when human input was supplied, else 4; bonuses for length and
// heading density; capped at 10.
func HeuristicScore(doc models.GeneratedDocument, human models.HumanInputs) models.QualityAssessment {
	score := heuristicBaseWithout
	if human.HasContent() {
		score = heuristicBaseWithHumanInput
	}

	if doc.WordCount > 1500 {
		score += 1.0
	}
	if doc.WordCount > 2500 {
		score += 0.7
	}

	headings := models.CountHeadings(doc.BodyText)
	if headings >= 5 {
		score += 0.5
	} else if headings >= 3 {
		score += 0.3
	}

	if score > maxOverallScore {
		score = maxOverallScore
	}

	var improvements []string
	if !human.HasContent() {
		improvements = append(improvements, "Add first-hand customer knowledge; generic content rarely ranks.")
	}
	if doc.WordCount <= 1500 {
		improvements = append(improvements, "Expand thin sections; competitive topics need depth.")
	}
	if headings < 3 {
		improvements = append(improvements, "Break the content into scannable sections with headings.")
	}
	if len(improvements) == 0 {
		improvements = append(improvements, "Review the draft for claims that need sourcing before publishing.")
	}

	prediction := "Solid foundation; refine with human insight before publishing."
	multiplier := "1-2x baseline"
	if score >= 8 {
		prediction = "Strong draft with genuine differentiation; should outperform generic competitors."
		multiplier = "2-4x baseline"
	}

	return models.QualityAssessment{
		OverallScore:              score,
		PerformancePrediction:     prediction,
		TrafficMultiplierEstimate: multiplier,
		CriticalImprovements:      improvements,
	}
}
