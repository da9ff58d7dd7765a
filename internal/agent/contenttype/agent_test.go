package contenttype

import (
	"context"
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

func TestClassify(t *testing.T) {
	gw := &fakeGateway{response: `{"content_type": "listicle", "reasoning": "scannable picks"}`}
	agent := NewAgent(gw, logger.Default())

	ct, err := agent.Classify(context.Background(), "best laptops", models.IntentRecord{}, models.ResearchInsights{}, models.BusinessContext{})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeListicle, ct)
}

func TestClassifyUnknownTypeNormalized(t *testing.T) {
	gw := &fakeGateway{response: `{"content_type": "infographic", "reasoning": "visual"}`}
	agent := NewAgent(gw, logger.Default())

	ct, err := agent.Classify(context.Background(), "topic", models.IntentRecord{}, models.ResearchInsights{}, models.BusinessContext{})
	require.NoError(t, err)
	assert.Equal(t, models.ContentTypeGuide, ct)
}

func TestClassifyMalformedResponse(t *testing.T) {
	gw := &fakeGateway{response: "pick a listicle"}
	agent := NewAgent(gw, logger.Default())

	_, err := agent.Classify(context.Background(), "topic", models.IntentRecord{}, models.ResearchInsights{}, models.BusinessContext{})
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)
}

func TestFallback(t *testing.T) {
	ct := Fallback(models.IntentRecord{RecommendedContentType: models.ContentTypeHowTo})
	assert.Equal(t, models.ContentTypeHowTo, ct)

	ct = Fallback(models.IntentRecord{})
	assert.Equal(t, models.ContentTypeGuide, ct)
}
