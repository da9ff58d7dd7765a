package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

func sampleResult() *models.PipelineResult {
	status := models.NewSystemStatus()
	status.MarkFallback(models.StageResearch, "no API credentials")

	return &models.PipelineResult{
		Request: models.RequestContext{Topic: "standing desks"},
		Research: models.ResearchInsights{
			PostsAnalyzed:        12,
			CommentsAnalyzed:     40,
			PainPoints:           map[string]int{"cost_concerns": 6, "confusion": 3},
			FrequentQuestions:    []string{"Are standing desks worth it?"},
			SourceTag:            models.ResearchSourceLive,
			ResearchQualityScore: 80,
		},
		EEAT: models.EEATAssessment{
			OverallScore: 7.2,
			ComponentScores: map[string]float64{
				models.EEATExperience:        7.0,
				models.EEATExpertise:         6.5,
				models.EEATAuthoritativeness: 6.0,
				models.EEATTrustworthiness:   8.0,
			},
			ImprovementRecommendations: []string{"Add author credentials."},
		},
		Quality: models.QualityAssessment{
			OverallScore:              8.1,
			PerformancePrediction:     "Should outperform generic competitors.",
			TrafficMultiplierEstimate: "2-4x baseline",
			CriticalImprovements:      []string{"Cite sources for pricing claims."},
		},
		Document: models.GeneratedDocument{
			ContentType: models.ContentTypeGuide,
			BodyText:    "# Guide\n\nbody",
			WordCount:   1800,
		},
		Status: status,
	}
}

func TestRespondWithoutResult(t *testing.T) {
	r := NewResponder()
	answer := r.Respond("what was the score?", nil)
	assert.Contains(t, answer, "No analysis is loaded yet")
}

func TestRespondRouting(t *testing.T) {
	r := NewResponder()
	result := sampleResult()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"score question", "What score did the content get?", "8.1/10"},
		{"quality synonym", "How good is the quality?", "8.1/10"},
		{"improvement question", "How can I improve it?", "Cite sources for pricing claims."},
		{"research question", "What did the research find?", "12 posts"},
		{"pain point question", "What pain points came up?", "cost_concerns"},
		{"eeat question", "How is the E-E-A-T looking?", "Component scores"},
		{"trust synonym", "Can readers trust this?", "Component scores"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := r.Respond(tt.message, result)
			assert.Contains(t, answer, tt.want)
		})
	}
}

func TestRespondResearchAnswerDetails(t *testing.T) {
	r := NewResponder()
	answer := r.Respond("tell me about the research", sampleResult())

	assert.Contains(t, answer, "12 posts and 40 comments")
	assert.Contains(t, answer, "cost_concerns (mentioned 6 times)")
	assert.Contains(t, answer, "Are standing desks worth it?")
}

func TestRespondImprovementFallsBackToEEATRecs(t *testing.T) {
	r := NewResponder()
	result := sampleResult()
	result.Quality.CriticalImprovements = nil

	answer := r.Respond("what should I fix?", result)
	assert.Contains(t, answer, "Add author credentials.")
}

func TestRespondImprovementNothingFlagged(t *testing.T) {
	r := NewResponder()
	result := sampleResult()
	result.Quality.CriticalImprovements = nil
	result.EEAT.ImprovementRecommendations = nil

	answer := r.Respond("what should I fix?", result)
	assert.Contains(t, answer, "No critical improvements were flagged")
}

func TestRespondDefaultSummary(t *testing.T) {
	r := NewResponder()
	answer := r.Respond("hello there", sampleResult())

	assert.Contains(t, answer, "standing desks")
	assert.Contains(t, answer, "1800 words")
	assert.Contains(t, answer, "1 pipeline stage(s) ran in fallback mode")
	assert.True(t, strings.Contains(answer, "guide"))
}
