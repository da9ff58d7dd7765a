package quality

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

type fakeGateway struct {
	response string
	err      error
}

func (f *fakeGateway) GenerateText(_ context.Context, _ string, _ int) (string, error) {
	return f.response, f.err
}

func (f *fakeGateway) GenerateJSON(_ context.Context, _ string) (string, error) {
	return f.response, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "disabled"})
}

func docOfWords(n int) models.GeneratedDocument {
	return models.NewGeneratedDocument(models.ContentTypeGuide, strings.Repeat("word ", n))
}

var humanFilled = models.HumanInputs{CustomerPainPoints: "assembly is fiddly"}

func TestHeuristicScoreBases(t *testing.T) {
	withHuman := HeuristicScore(docOfWords(100), humanFilled)
	assert.InDelta(t, 7.0, withHuman.OverallScore, 0.001)

	without := HeuristicScore(docOfWords(100), models.HumanInputs{})
	assert.InDelta(t, 4.0, without.OverallScore, 0.001)
}

func TestHeuristicScoreLengthBonuses(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  float64
	}{
		{"short", 1000, 7.0},
		{"over 1500", 1600, 8.0},
		{"over 2500", 2600, 8.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeuristicScore(docOfWords(tt.words), humanFilled)
			assert.InDelta(t, tt.want, got.OverallScore, 0.001)
		})
	}
}

func TestHeuristicScoreHeadingBonuses(t *testing.T) {
	threeHeadings := models.NewGeneratedDocument(models.ContentTypeGuide,
		"# A\n\ntext\n\n## B\n\ntext\n\n## C\n\ntext")
	got := HeuristicScore(threeHeadings, humanFilled)
	assert.InDelta(t, 7.3, got.OverallScore, 0.001)

	fiveHeadings := models.NewGeneratedDocument(models.ContentTypeGuide,
		"# A\n## B\n## C\n## D\n## E\ntext")
	got = HeuristicScore(fiveHeadings, humanFilled)
	assert.InDelta(t, 7.5, got.OverallScore, 0.001)
}

func TestHeuristicScoreCap(t *testing.T) {
	body := "# A\n## B\n## C\n## D\n## E\n" + strings.Repeat("word ", 3000)
	doc := models.NewGeneratedDocument(models.ContentTypeGuide, body)
	got := HeuristicScore(doc, humanFilled)
	assert.LessOrEqual(t, got.OverallScore, 10.0)
}

func TestHeuristicScoreImprovements(t *testing.T) {
	got := HeuristicScore(docOfWords(100), models.HumanInputs{})
	assert.NotEmpty(t, got.CriticalImprovements)

	joined := strings.Join(got.CriticalImprovements, " ")
	assert.Contains(t, joined, "first-hand customer knowledge")
	assert.Contains(t, joined, "Expand thin sections")
}

func TestHeuristicScoreStrongDraftPrediction(t *testing.T) {
	body := "# A\n## B\n## C\n## D\n## E\n" + strings.Repeat("word ", 2600)
	got := HeuristicScore(models.NewGeneratedDocument(models.ContentTypeGuide, body), humanFilled)
	assert.GreaterOrEqual(t, got.OverallScore, 8.0)
	assert.Equal(t, "2-4x baseline", got.TrafficMultiplierEstimate)
}

func TestScoreUsesModelAssessment(t *testing.T) {
	gw := &fakeGateway{response: `{
		"overall_score": 8.4,
		"performance_prediction": "Should rank well.",
		"traffic_multiplier_estimate": "3x baseline",
		"critical_improvements": ["Cite sources for the pricing claims."]
	}`}
	s := NewScorer(gw, testLogger())

	got, err := s.Score(context.Background(), docOfWords(500), "standing desks",
		models.BusinessContext{Industry: "furniture"}, humanFilled, models.EEATAssessment{OverallScore: 7})
	require.NoError(t, err)
	assert.InDelta(t, 8.4, got.OverallScore, 0.001)
	assert.Equal(t, "Should rank well.", got.PerformancePrediction)
}

func TestScoreClampsModelScore(t *testing.T) {
	gw := &fakeGateway{response: `{"overall_score": 14.0}`}
	s := NewScorer(gw, testLogger())

	got, err := s.Score(context.Background(), docOfWords(500), "standing desks",
		models.BusinessContext{}, humanFilled, models.EEATAssessment{})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got.OverallScore, 0.001)
}

func TestScoreFallsBackOnGatewayError(t *testing.T) {
	gwErr := errors.New("upstream timeout")
	s := NewScorer(&fakeGateway{err: gwErr}, testLogger())

	got, err := s.Score(context.Background(), docOfWords(500), "standing desks",
		models.BusinessContext{}, humanFilled, models.EEATAssessment{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gwErr)
	assert.InDelta(t, 7.0, got.OverallScore, 0.001)
}

func TestScoreFallsBackOnMalformedResponse(t *testing.T) {
	s := NewScorer(&fakeGateway{response: "I would rate this an 8."}, testLogger())

	got, err := s.Score(context.Background(), docOfWords(500), "standing desks",
		models.BusinessContext{}, models.HumanInputs{}, models.EEATAssessment{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)
	assert.InDelta(t, 4.0, got.OverallScore, 0.001)
}

func TestScoreWithoutGateway(t *testing.T) {
	s := NewScorer(nil, testLogger())

	got, err := s.Score(context.Background(), docOfWords(500), "standing desks",
		models.BusinessContext{}, humanFilled, models.EEATAssessment{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrUpstreamUnavailable)
	assert.InDelta(t, 7.0, got.OverallScore, 0.001)
}
