package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/contenttype"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/intent"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/agent/journey"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/generator"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/research"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

// Pipeline runs the seven content generation stages in order. A stage
// failure never aborts the run; the stage's fallback value is substituted
// and the degradation is recorded on the result's system status.
type Pipeline struct {
	reg *Registry
	log *logger.Logger
}

// New creates the orchestrator over an assembled registry.
func New(reg *Registry, log *logger.Logger) *Pipeline {
	return &Pipeline{
		reg: reg,
		log: log.WithComponent("pipeline"),
	}
}

// Run executes one full generation run. It always returns a complete
// result; err is non-nil only when the context was canceled before the
// run could finish.
func (p *Pipeline) Run(ctx context.Context, req models.RequestContext) (*models.PipelineResult, error) {
	started := time.Now()
	runID := uuid.NewString()
	status := models.NewSystemStatus()
	log := p.log.WithRunID(runID)

	log.Info().Str("topic", req.Topic).Strs("communities", req.TargetCommunities).Msg("Starting generation run")

	research := p.runResearch(ctx, log, req, status)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	intentRec, err := p.reg.Intent.Classify(ctx, req.Topic, req.Business)
	if err != nil {
		log.Warn().Err(err).Str("stage", models.StageIntent).Msg("Stage failed, using fallback")
		status.MarkFallback(models.StageIntent, err.Error())
		intentRec = intent.Fallback(req.Business)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	journeyRec, err := p.reg.Journey.Classify(ctx, req.Topic, intentRec, research)
	if err != nil {
		log.Warn().Err(err).Str("stage", models.StageJourney).Msg("Stage failed, using fallback")
		status.MarkFallback(models.StageJourney, err.Error())
		journeyRec = journey.Fallback(research)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contentType, err := p.reg.ContentType.Classify(ctx, req.Topic, intentRec, research, req.Business)
	if err != nil {
		log.Warn().Err(err).Str("stage", models.StageContentType).Msg("Stage failed, using fallback")
		status.MarkFallback(models.StageContentType, err.Error())
		contentType = contenttype.Fallback(intentRec)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The score itself is deterministic; only the improvement
	// recommendations need the model, so a failure here still yields a
	// fully populated assessment.
	eeatRec, err := p.reg.EEAT.Assess(ctx, req.Topic, req.Business, req.Human)
	if err != nil {
		log.Warn().Err(err).Str("stage", models.StageEEAT).Msg("Recommendation generation failed, using canned set")
		status.MarkFallback(models.StageEEAT, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, usedTemplate := p.reg.Generator.Generate(ctx, generator.Input{
		Topic:       req.Topic,
		ContentType: contentType,
		Research:    research,
		Journey:     journeyRec,
		Business:    req.Business,
		Human:       req.Human,
		EEAT:        eeatRec,
	})
	if usedTemplate {
		log.Warn().Str("stage", models.StageGenerate).Msg("Model generation unavailable, rendered template skeleton")
		status.MarkFallback(models.StageGenerate, "model generation unavailable, rendered template skeleton")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qualityRec, err := p.reg.Scorer.Score(ctx, doc, req.Topic, req.Business, req.Human, eeatRec)
	if err != nil {
		log.Warn().Err(err).Str("stage", models.StageScore).Msg("Stage failed, using heuristic score")
		status.MarkFallback(models.StageScore, err.Error())
	}

	result := &models.PipelineResult{
		RunID:     runID,
		Request:   req,
		Research:  research,
		Intent:    intentRec,
		Journey:   journeyRec,
		EEAT:      eeatRec,
		Document:  doc,
		Quality:   qualityRec,
		Status:    status,
		StartedAt: started,
		Duration:  time.Since(started),
	}

	log.Info().
		Str("content_type", string(doc.ContentType)).
		Int("word_count", doc.WordCount).
		Float64("quality_score", qualityRec.OverallScore).
		Int("fallback_stages", status.FallbackCount()).
		Dur("duration", result.Duration).
		Msg("Generation run complete")

	return result, nil
}

// runResearch tries each configured collector in order. The synthetic
// collector sits last in the chain and cannot fail, so this always
// returns insights.
func (p *Pipeline) runResearch(ctx context.Context, log *logger.Logger, req models.RequestContext, status models.SystemStatus) models.ResearchInsights {
	var lastErr error
	for _, collector := range p.reg.Collectors {
		insights, err := collector.ResearchTopic(ctx, req.Topic, req.TargetCommunities, p.reg.MaxPostsPerCommunity)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Msg("Research collector failed, trying next")
			continue
		}
		if insights.SourceTag == models.ResearchSourceFallback {
			reason := "no external research source available"
			if lastErr != nil {
				reason = lastErr.Error()
			}
			status.MarkFallback(models.StageResearch, reason)
		}
		return insights
	}

	// Unreachable as long as the synthetic collector is registered, but
	// keep the run alive even if wiring changes.
	reason := "no research collectors configured"
	if lastErr != nil {
		reason = lastErr.Error()
	}
	status.MarkFallback(models.StageResearch, reason)
	return research.SyntheticInsights(req.Topic)
}
