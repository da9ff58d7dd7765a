package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/config"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/ratelimit"
)

// ErrUpstreamUnavailable marks a network, auth, or rate-limit failure from
// the model API. Callers substitute their documented fallback; the gateway
// itself never retries.
var ErrUpstreamUnavailable = errors.New("llm upstream unavailable")

// ErrMalformedResponse marks a response that could not be parsed into the
// schema the caller asked for.
var ErrMalformedResponse = errors.New("malformed llm response")

const jsonPreamble = "\n\nIMPORTANT: Respond ONLY with valid JSON. No markdown, no explanation, just the JSON object."

// Per-call budget; a timeout is treated the same as any other upstream failure.
const callTimeout = 30 * time.Second

// Gateway is the text-generation boundary every agent talks through
type Gateway interface {
	// GenerateText sends a prompt and returns raw model text
	GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error)
	// GenerateJSON is GenerateText with a fixed JSON-only system preamble.
	// The return value is still raw text: parsing is the caller's job.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Client wraps the Anthropic SDK client
type Client struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	rateLimiter *ratelimit.MultiLimiter
	log         *logger.Logger
}

var _ Gateway = (*Client)(nil)

// NewClient creates a new Anthropic-backed gateway
func NewClient(cfg config.AnthropicConfig, limiter *ratelimit.MultiLimiter, log *logger.Logger) *Client {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
	)

	return &Client{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		rateLimiter: limiter,
		log:         log.WithComponent("ai"),
	}
}

// GenerateText sends a prompt to Claude and returns the response text
func (c *Client) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return c.complete(ctx, "", prompt, maxTokens)
}

// GenerateJSON sends a prompt and instructs the model to emit JSON
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, "You are a precise assistant."+jsonPreamble, prompt, c.maxTokens)
}

func (c *Client) complete(ctx context.Context, systemPrompt, userMessage string, maxTokens int) (string, error) {
	if err := c.rateLimiter.Wait(ctx, ratelimit.LimiterAnthropic); err != nil {
		return "", fmt.Errorf("rate limit error: %w", err)
	}

	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	c.log.Debug().
		Str("model", c.model).
		Int("max_tokens", maxTokens).
		Msg("Sending request to Claude")

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(userMessage),
				},
			},
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: systemPrompt,
			},
		}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.log.Error().Err(err).Msg("Claude API error")
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	var response string
	for _, block := range message.Content {
		textBlock := block.AsText()
		if textBlock.Text != "" {
			response += textBlock.Text
		}
	}

	c.log.Debug().
		Int("input_tokens", int(message.Usage.InputTokens)).
		Int("output_tokens", int(message.Usage.OutputTokens)).
		Msg("Received Claude response")

	return response, nil
}
