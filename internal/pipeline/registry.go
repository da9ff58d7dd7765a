package pipeline

import (
	"time"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/contenttype"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/eeat"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/intent"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/journey"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/chat"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/config"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/generator"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/quality"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/research"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/research/reddit"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/ratelimit"
)

// ComponentMode describes which implementation a component was wired with
// at startup. Enhanced components talk to an upstream; fallback components
// run fully local.
type ComponentMode string

const (
	ModeEnhanced ComponentMode = "enhanced"
	ModeFallback ComponentMode = "fallback"
)

// Registry holds every pipeline component, selected once at construction
// based on which credentials the configuration carries. Missing credentials
// never fail startup; the affected component is wired to its fallback
// implementation instead.
type Registry struct {
	Gateway     ai.Gateway
	Collectors  []research.Collector
	Intent      *intent.Agent
	Journey     *journey.Agent
	ContentType *contenttype.Agent
	EEAT        *eeat.Agent
	Generator   *generator.Generator
	Scorer      *quality.Scorer
	Responder   *chat.Responder

	MaxPostsPerCommunity int

	modes map[string]ComponentMode
}

// NewRegistry wires the pipeline from configuration.
func NewRegistry(cfg *config.Config, limiter *ratelimit.MultiLimiter, log *logger.Logger) *Registry {
	reg := &Registry{
		MaxPostsPerCommunity: cfg.Research.MaxPostsPerCommunity,
		modes:                make(map[string]ComponentMode),
	}

	var gateway ai.Gateway
	if cfg.Anthropic.Enabled() {
		gateway = ai.NewClient(cfg.Anthropic, limiter, log)
		reg.modes["llm_gateway"] = ModeEnhanced
	} else {
		log.Warn().Msg("No Anthropic API key configured, model-backed components run in fallback mode")
		reg.modes["llm_gateway"] = ModeFallback
	}
	reg.Gateway = gateway

	communityDelay := parseDurationOr(cfg.Research.CommunityDelay, time.Second)

	// Research collectors are tried in order until one yields insights.
	if cfg.Reddit.Enabled() {
		api := reddit.NewClient(cfg.Reddit, limiter, log)
		reg.Collectors = append(reg.Collectors,
			research.NewLiveCollector(api, cfg.Research.MaxCommentsPerPost, communityDelay, log))
		reg.modes["research"] = ModeEnhanced
	} else {
		log.Warn().Msg("No Reddit credentials configured, research runs without the authenticated API")
		reg.modes["research"] = ModeFallback
	}
	if cfg.Research.PublicFeedsEnabled {
		reg.Collectors = append(reg.Collectors,
			research.NewFeedCollector(limiter, communityDelay, log))
	}
	reg.Collectors = append(reg.Collectors, research.NewSyntheticCollector())

	reg.Intent = intent.NewAgent(gateway, log)
	reg.Journey = journey.NewAgent(gateway, log)
	reg.ContentType = contenttype.NewAgent(gateway, log)
	reg.EEAT = eeat.NewAgent(gateway, log)

	var primary generator.Strategy
	if gateway != nil {
		primary = generator.NewLLMStrategy(gateway, cfg.Anthropic.MaxTokens, log)
	}
	reg.Generator = generator.New(primary, log)
	reg.Scorer = quality.NewScorer(gateway, log)
	reg.Responder = chat.NewResponder()

	enhanced := reg.modes["llm_gateway"]
	for _, component := range []string{"intent", "journey", "content_type", "eeat", "generator", "quality"} {
		reg.modes[component] = enhanced
	}

	return reg
}

// ComponentModes returns a copy of the startup wiring, keyed by component
// name. Used by the health endpoint.
func (r *Registry) ComponentModes() map[string]ComponentMode {
	out := make(map[string]ComponentMode, len(r.modes))
	for k, v := range r.modes {
		out[k] = v
	}
	return out
}

// FallbackComponentCount returns how many components were wired to
// fallback implementations at startup.
func (r *Registry) FallbackComponentCount() int {
	n := 0
	for _, mode := range r.modes {
		if mode == ModeFallback {
			n++
		}
	}
	return n
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
