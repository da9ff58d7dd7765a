package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

// Per-content-type style briefs for the prompt. The shared prompt body
// carries the research and business records; the brief sets the shape.
var styleBriefs = map[models.ContentType]string{
	models.ContentTypeGuide:      "Write a comprehensive, well-structured guide with clear markdown headings, covering the topic end to end from fundamentals to advanced considerations.",
	models.ContentTypeBlogPost:   "Write an opinionated blog post with a strong hook, short paragraphs, and a clear point of view.",
	models.ContentTypeHowTo:      "Write a practical step-by-step how-to with numbered steps, prerequisites, and common-mistake callouts.",
	models.ContentTypeListicle:   "Write a numbered listicle where every item delivers one concrete, self-contained insight.",
	models.ContentTypeComparison: "Write a balanced comparison that lays out evaluation criteria before weighing options, including a markdown table.",
}

const generatePrompt = `%s

Topic: %s
Target audience: %s
Journey stage: %s
Brand voice: %s
Content goal: %s
Unique value proposition: %s

Real pain points found in community research (label: intensity):
%s

Real customer quotes:
%s

Questions people ask:
%s

First-hand input from the business:
- Customer pain points: %s
- Frequent questions: %s
- Success story: %s

E-E-A-T guidance: overall %.1f/10, YMYL=%t. Weave in genuine experience and trustworthy sourcing.

Write the complete %s in markdown. At least 1500 words. Mention the topic by name. Output only the document, no preamble.`

// LLMStrategy generates documents through the model with one large prompt
// embedding every upstream record.
type LLMStrategy struct {
	gateway   ai.Gateway
	maxTokens int
	log       *logger.Logger
}

// NewLLMStrategy creates the model-backed generation strategy
func NewLLMStrategy(gateway ai.Gateway, maxTokens int, log *logger.Logger) *LLMStrategy {
	return &LLMStrategy{
		gateway:   gateway,
		maxTokens: maxTokens,
		log:       log.WithComponent("generator-llm"),
	}
}

var _ Strategy = (*LLMStrategy)(nil)

// Generate builds the prompt and returns the model's text verbatim as the
// document body.
func (s *LLMStrategy) Generate(ctx context.Context, input Input) (models.GeneratedDocument, error) {
	contentType := models.NormalizeContentType(string(input.ContentType))

	brief, ok := styleBriefs[contentType]
	if !ok {
		brief = styleBriefs[models.ContentTypeGuide]
	}

	var painPoints strings.Builder
	for _, label := range input.Research.TopPainPoints(8) {
		fmt.Fprintf(&painPoints, "- %s: %d\n", label, input.Research.PainPoints[label])
	}

	prompt := fmt.Sprintf(generatePrompt,
		brief,
		input.Topic,
		input.Business.TargetAudience,
		input.Journey.PrimaryStage,
		input.Business.BrandVoice,
		input.Business.ContentGoal,
		input.Business.UniqueValueProp,
		painPoints.String(),
		bulleted(input.Research.CustomerQuotes),
		bulleted(input.Research.FrequentQuestions),
		input.Human.CustomerPainPoints,
		input.Human.FrequentQuestions,
		input.Human.SuccessStory,
		input.EEAT.OverallScore,
		input.EEAT.IsYMYL,
		humanizeLabel(string(contentType)),
	)

	body, err := s.gateway.GenerateText(ctx, prompt, s.maxTokens)
	if err != nil {
		return models.GeneratedDocument{}, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return models.GeneratedDocument{}, fmt.Errorf("%w: empty document", ai.ErrMalformedResponse)
	}

	s.log.Debug().
		Str("content_type", string(contentType)).
		Int("words", models.CountWords(body)).
		Msg("Generated document")

	return models.NewGeneratedDocument(contentType, body), nil
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}
