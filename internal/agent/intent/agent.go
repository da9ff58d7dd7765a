package intent

import (
	"context"
	"fmt"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

const classifyPrompt = `Analyze the search intent behind the following topic.

Topic: %s
Industry: %s
Target audience: %s

Respond in JSON format:
{
  "primary_intent": "<commercial | informational | navigational | commercial_informational>",
  "search_stage": "<awareness | consideration | decision>",
  "target_audience": "<one sentence describing who is searching>",
  "recommended_content_type": "<guide | blog_post | how_to | listicle | comparison>"
}`

// Agent classifies the search intent behind a topic
type Agent struct {
	gateway ai.Gateway
	log     *logger.Logger
}

// NewAgent creates an intent classification agent
func NewAgent(gateway ai.Gateway, log *logger.Logger) *Agent {
	return &Agent{
		gateway: gateway,
		log:     log.WithComponent("intent"),
	}
}

// Classify asks the model for an intent record. Upstream and parse failures
// surface as errors; the orchestrator substitutes Fallback.
func (a *Agent) Classify(ctx context.Context, topic string, business models.BusinessContext) (models.IntentRecord, error) {
	if a.gateway == nil {
		return models.IntentRecord{}, ai.ErrUpstreamUnavailable
	}

	prompt := fmt.Sprintf(classifyPrompt, topic, business.Industry, business.TargetAudience)

	response, err := a.gateway.GenerateJSON(ctx, prompt)
	if err != nil {
		return models.IntentRecord{}, err
	}

	var record models.IntentRecord
	if err := ai.ParseJSON(response, &record); err != nil {
		a.log.Warn().Err(err).Str("response", response).Msg("Failed to parse intent response")
		return models.IntentRecord{}, err
	}

	record.RecommendedContentType = models.NormalizeContentType(string(record.RecommendedContentType))
	return record, nil
}

// Fallback is the documented default intent record
func Fallback(business models.BusinessContext) models.IntentRecord {
	audience := business.TargetAudience
	if audience == "" {
		audience = "people researching the topic before committing to a choice"
	}
	return models.IntentRecord{
		PrimaryIntent:          models.IntentCommercialInformational,
		SearchStage:            models.StageConsideration,
		TargetAudience:         audience,
		RecommendedContentType: models.ContentTypeGuide,
	}
}
