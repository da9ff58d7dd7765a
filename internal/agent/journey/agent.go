package journey

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

const classifyPrompt = `Map the customer journey for the following topic.

Topic: %s
Search intent: %s (%s stage)
Observed pain points: %s

Respond in JSON format:
{
  "primary_stage": "<awareness | consideration | decision>",
  "key_pain_points": ["<pain point>", "<pain point>"],
  "emotional_triggers": ["<emotion>", "<emotion>"]
}`

// Agent maps where the searcher sits in the buying journey
type Agent struct {
	gateway ai.Gateway
	log     *logger.Logger
}

// NewAgent creates a journey mapping agent
func NewAgent(gateway ai.Gateway, log *logger.Logger) *Agent {
	return &Agent{
		gateway: gateway,
		log:     log.WithComponent("journey"),
	}
}

// Classify asks the model for a journey record
func (a *Agent) Classify(ctx context.Context, topic string, intent models.IntentRecord, research models.ResearchInsights) (models.JourneyRecord, error) {
	if a.gateway == nil {
		return models.JourneyRecord{}, ai.ErrUpstreamUnavailable
	}

	prompt := fmt.Sprintf(classifyPrompt,
		topic,
		intent.PrimaryIntent,
		intent.SearchStage,
		strings.Join(research.TopPainPoints(5), ", "),
	)

	response, err := a.gateway.GenerateJSON(ctx, prompt)
	if err != nil {
		return models.JourneyRecord{}, err
	}

	var record models.JourneyRecord
	if err := ai.ParseJSON(response, &record); err != nil {
		a.log.Warn().Err(err).Str("response", response).Msg("Failed to parse journey response")
		return models.JourneyRecord{}, err
	}
	return record, nil
}

// Fallback is the documented default journey record. Pain points come from
// the research stage when it found any, so the fallback still reflects the
// topic rather than being fully generic.
func Fallback(research models.ResearchInsights) models.JourneyRecord {
	painPoints := research.TopPainPoints(3)
	if len(painPoints) == 0 {
		painPoints = []string{
			"finding trustworthy information",
			"comparing too many options",
			"avoiding a costly mistake",
		}
	}
	return models.JourneyRecord{
		PrimaryStage:      models.StageConsideration,
		KeyPainPoints:     painPoints,
		EmotionalTriggers: []string{"frustration", "uncertainty", "hope"},
	}
}
