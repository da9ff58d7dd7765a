package contenttype

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

const classifyPrompt = `Choose the best content format for the following topic.

Topic: %s
Search intent: %s (%s stage)
Intent-stage recommendation: %s
Top researched pain points: %s
Content goal: %s

Available formats: guide, blog_post, how_to, listicle, comparison

Respond in JSON format:
{
  "content_type": "<format>",
  "reasoning": "<one sentence>"
}`

// Agent selects the content format for a generation run
type Agent struct {
	gateway ai.Gateway
	log     *logger.Logger
}

// NewAgent creates a content-type selection agent
func NewAgent(gateway ai.Gateway, log *logger.Logger) *Agent {
	return &Agent{
		gateway: gateway,
		log:     log.WithComponent("content-type"),
	}
}

type classifyResponse struct {
	ContentType string `json:"content_type"`
	Reasoning   string `json:"reasoning"`
}

// Classify asks the model which format to generate
func (a *Agent) Classify(ctx context.Context, topic string, intent models.IntentRecord, research models.ResearchInsights, business models.BusinessContext) (models.ContentType, error) {
	if a.gateway == nil {
		return "", ai.ErrUpstreamUnavailable
	}

	prompt := fmt.Sprintf(classifyPrompt,
		topic,
		intent.PrimaryIntent,
		intent.SearchStage,
		intent.RecommendedContentType,
		strings.Join(research.TopPainPoints(5), ", "),
		business.ContentGoal,
	)

	response, err := a.gateway.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", err
	}

	var parsed classifyResponse
	if err := ai.ParseJSON(response, &parsed); err != nil {
		a.log.Warn().Err(err).Str("response", response).Msg("Failed to parse content-type response")
		return "", err
	}

	return models.NormalizeContentType(parsed.ContentType), nil
}

// Fallback is the documented default: the intent stage's recommendation,
// or the comprehensive guide when that is also absent.
func Fallback(intent models.IntentRecord) models.ContentType {
	if intent.RecommendedContentType != "" {
		return models.NormalizeContentType(string(intent.RecommendedContentType))
	}
	return models.ContentTypeGuide
}
