package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/contenttype"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/eeat"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/intent"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/journey"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/chat"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/generator"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/quality"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/research"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

// queuedGateway returns canned JSON responses in call order
type queuedGateway struct {
	responses []string
	calls     int
}

func (g *queuedGateway) GenerateText(_ context.Context, _ string, _ int) (string, error) {
	return "generated body text", nil
}

func (g *queuedGateway) GenerateJSON(_ context.Context, _ string) (string, error) {
	if g.calls >= len(g.responses) {
		return "", ai.ErrUpstreamUnavailable
	}
	response := g.responses[g.calls]
	g.calls++
	return response, nil
}

// fakeCollector returns fixed insights or an error
type fakeCollector struct {
	insights models.ResearchInsights
	err      error
}

func (f fakeCollector) ResearchTopic(_ context.Context, _ string, _ []string, _ int) (models.ResearchInsights, error) {
	return f.insights, f.err
}

func testRegistry(gw ai.Gateway, collectors ...research.Collector) *Registry {
	log := logger.New(logger.Config{Level: "disabled"})
	return &Registry{
		Gateway:              gw,
		Collectors:           collectors,
		Intent:               intent.NewAgent(gw, log),
		Journey:              journey.NewAgent(gw, log),
		ContentType:          contenttype.NewAgent(gw, log),
		EEAT:                 eeat.NewAgent(gw, log),
		Generator:            generator.New(nil, log),
		Scorer:               quality.NewScorer(gw, log),
		Responder:            chat.NewResponder(),
		MaxPostsPerCommunity: 5,
		modes:                make(map[string]ComponentMode),
	}
}

func testRequest() models.RequestContext {
	return models.RequestContext{
		Topic:             "standing desks",
		TargetCommunities: []string{"homeoffice"},
		Business: models.BusinessContext{
			Industry:        "furniture",
			TargetAudience:  "remote workers",
			BusinessType:    "retailer",
			ContentGoal:     "drive purchases",
			UniqueValueProp: "ten-year warranty",
			BrandVoice:      "friendly",
		},
		Human: models.HumanInputs{
			CustomerPainPoints: "assembly is fiddly",
			FrequentQuestions:  "is it worth the money?",
		},
	}
}

func liveInsights() models.ResearchInsights {
	return models.ResearchInsights{
		PostsAnalyzed:        8,
		CommentsAnalyzed:     20,
		PainPoints:           map[string]int{"cost_concerns": 4},
		SourceTag:            models.ResearchSourceLive,
		ResearchQualityScore: 70,
	}
}

func TestRunAllStagesLive(t *testing.T) {
	gw := &queuedGateway{responses: []string{
		`{"primary_intent":"commercial","search_stage":"decision","target_audience":"remote workers","recommended_content_type":"comparison"}`,
		`{"primary_stage":"decision","key_pain_points":["price uncertainty"],"emotional_triggers":["frustrated"]}`,
		`{"content_type":"comparison","reasoning":"decision-stage buyers compare options"}`,
		`{"recommendations":["Add a warranty comparison table."]}`,
		`{"overall_score":8.2,"performance_prediction":"Strong.","traffic_multiplier_estimate":"2-3x baseline","critical_improvements":["Cite pricing sources."]}`,
	}}
	reg := testRegistry(gw, fakeCollector{insights: liveInsights()}, research.NewSyntheticCollector())
	p := New(reg, logger.New(logger.Config{Level: "disabled"}))

	result, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 0, result.Status.FallbackCount())
	assert.Equal(t, models.IntentCommercial, result.Intent.PrimaryIntent)
	assert.Equal(t, models.StageDecision, result.Journey.PrimaryStage)
	assert.Equal(t, models.ContentTypeComparison, result.Document.ContentType)
	assert.InDelta(t, 8.2, result.Quality.OverallScore, 0.001)
	assert.Equal(t, []string{"Add a warranty comparison table."}, result.EEAT.ImprovementRecommendations)
	assert.Equal(t, models.ResearchSourceLive, result.Research.SourceTag)
	assert.Positive(t, result.Document.WordCount)
}

func TestRunGatewayDown(t *testing.T) {
	reg := testRegistry(nil, research.NewSyntheticCollector())
	p := New(reg, logger.New(logger.Config{Level: "disabled"}))

	result, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, result)

	// Every model-backed stage degrades to its fallback, research falls
	// through to the synthetic collector, and the run still completes.
	assert.Equal(t, models.ModeFallback, result.Status.Stages[models.StageResearch])
	assert.Equal(t, models.ModeFallback, result.Status.Stages[models.StageIntent])
	assert.Equal(t, models.ModeFallback, result.Status.Stages[models.StageJourney])
	assert.Equal(t, models.ModeFallback, result.Status.Stages[models.StageContentType])
	assert.Equal(t, models.ModeFallback, result.Status.Stages[models.StageEEAT])
	assert.Equal(t, models.ModeFallback, result.Status.Stages[models.StageScore])

	assert.Equal(t, models.ResearchSourceFallback, result.Research.SourceTag)
	assert.Equal(t, models.IntentCommercialInformational, result.Intent.PrimaryIntent)
	assert.NotEmpty(t, result.EEAT.ImprovementRecommendations)
	assert.NotEmpty(t, result.Document.BodyText)
	assert.Positive(t, result.Quality.OverallScore)
}

func TestRunResearchCollectorChain(t *testing.T) {
	gw := &queuedGateway{responses: []string{
		`{"primary_intent":"informational","search_stage":"awareness","target_audience":"beginners","recommended_content_type":"guide"}`,
		`{"primary_stage":"awareness","key_pain_points":["confusion"],"emotional_triggers":["worried"]}`,
		`{"content_type":"guide","reasoning":"broad topic"}`,
		`{"recommendations":["Name the author."]}`,
		`{"overall_score":7.0}`,
	}}
	failing := fakeCollector{err: research.ErrNoResults}
	second := fakeCollector{insights: liveInsights()}
	reg := testRegistry(gw, failing, second, research.NewSyntheticCollector())
	p := New(reg, logger.New(logger.Config{Level: "disabled"}))

	result, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)

	// The second collector produced live-tagged insights, so the research
	// stage does not count as degraded.
	assert.Equal(t, models.ModeLive, result.Status.Stages[models.StageResearch])
	assert.Equal(t, 8, result.Research.PostsAnalyzed)
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	responses := []string{
		`{"primary_intent":"commercial","search_stage":"decision","target_audience":"remote workers","recommended_content_type":"comparison"}`,
		`{"primary_stage":"decision","key_pain_points":["price uncertainty"],"emotional_triggers":["frustrated"]}`,
		`{"content_type":"comparison","reasoning":"decision-stage buyers compare options"}`,
		`{"recommendations":["Add a warranty comparison table."]}`,
		`{"overall_score":8.2,"performance_prediction":"Strong.","traffic_multiplier_estimate":"2-3x baseline"}`,
	}

	run := func() *models.PipelineResult {
		gw := &queuedGateway{responses: append([]string(nil), responses...)}
		reg := testRegistry(gw, fakeCollector{insights: liveInsights()}, research.NewSyntheticCollector())
		p := New(reg, logger.New(logger.Config{Level: "disabled"}))
		result, err := p.Run(context.Background(), testRequest())
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	// RunID, StartedAt and Duration are the only per-run fields; everything
	// else must match exactly for identical inputs.
	second.RunID = first.RunID
	second.StartedAt = first.StartedAt
	second.Duration = first.Duration
	assert.Equal(t, first, second)
}

func TestRunWithoutCollectors(t *testing.T) {
	reg := testRegistry(nil)
	p := New(reg, logger.New(logger.Config{Level: "disabled"}))

	result, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, models.ModeFallback, result.Status.Stages[models.StageResearch])
	assert.Equal(t, "no research collectors configured", result.Status.Reasons[models.StageResearch])
	assert.Equal(t, models.ResearchSourceFallback, result.Research.SourceTag)
	assert.Positive(t, result.Research.ResearchQualityScore)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg := testRegistry(nil, research.NewSyntheticCollector())
	p := New(reg, logger.New(logger.Config{Level: "disabled"}))

	result, err := p.Run(ctx, testRequest())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRecordsFallbackReasons(t *testing.T) {
	reg := testRegistry(nil, research.NewSyntheticCollector())
	p := New(reg, logger.New(logger.Config{Level: "disabled"}))

	result, err := p.Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, result.Status.Reasons[models.StageIntent])
	assert.NotEmpty(t, result.Status.Reasons[models.StageResearch])
}
