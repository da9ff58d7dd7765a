package models

import "time"

// Pipeline stage names, in execution order
const (
	StageResearch    = "research"
	StageIntent      = "intent"
	StageJourney     = "journey"
	StageContentType = "content_type"
	StageEEAT        = "eeat"
	StageGenerate    = "generate"
	StageScore       = "score"
)

// StageOrder lists the stages in the order the orchestrator runs them
var StageOrder = []string{
	StageResearch,
	StageIntent,
	StageJourney,
	StageContentType,
	StageEEAT,
	StageGenerate,
	StageScore,
}

// StageMode records whether a stage ran its live implementation or a fallback
type StageMode string

const (
	ModeLive     StageMode = "live"
	ModeFallback StageMode = "fallback"
)

// SystemStatus tracks per-stage execution mode for one pipeline run
type SystemStatus struct {
	Stages  map[string]StageMode `json:"stages"`
	Reasons map[string]string    `json:"reasons,omitempty"`
}

// NewSystemStatus initializes every stage to live mode
func NewSystemStatus() SystemStatus {
	stages := make(map[string]StageMode, len(StageOrder))
	for _, s := range StageOrder {
		stages[s] = ModeLive
	}
	return SystemStatus{Stages: stages, Reasons: make(map[string]string)}
}

// MarkFallback records that a stage substituted its fallback value
func (s SystemStatus) MarkFallback(stage, reason string) {
	s.Stages[stage] = ModeFallback
	s.Reasons[stage] = reason
}

// FallbackCount returns how many stages ran in fallback mode
func (s SystemStatus) FallbackCount() int {
	n := 0
	for _, mode := range s.Stages {
		if mode == ModeFallback {
			n++
		}
	}
	return n
}

// PipelineResult aggregates every intermediate record of one run.
// It is the sole object handed to the presentation layer.
type PipelineResult struct {
	RunID     string            `json:"run_id"`
	Request   RequestContext    `json:"request"`
	Research  ResearchInsights  `json:"research"`
	Intent    IntentRecord      `json:"intent"`
	Journey   JourneyRecord     `json:"journey"`
	EEAT      EEATAssessment    `json:"eeat"`
	Document  GeneratedDocument `json:"document"`
	Quality   QualityAssessment `json:"quality"`
	Status    SystemStatus      `json:"system_status"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration"`
}
