package generator

import (
	"context"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

// Input aggregates every upstream record the generator draws from
type Input struct {
	Topic       string
	ContentType models.ContentType
	Research    models.ResearchInsights
	Journey     models.JourneyRecord
	Business    models.BusinessContext
	Human       models.HumanInputs
	EEAT        models.EEATAssessment
}

// Strategy produces a long-form document from the aggregated inputs
type Strategy interface {
	Generate(ctx context.Context, input Input) (models.GeneratedDocument, error)
}

// Generator runs the model-backed strategy and substitutes the template
// strategy's output for the same content type when it fails. The template
// strategy is pure and cannot fail, so Generate degrades but never errors.
type Generator struct {
	primary  Strategy
	template *TemplateStrategy
	log      *logger.Logger
}

// New creates a generator. primary may be nil, in which case every document
// comes from the template strategy.
func New(primary Strategy, log *logger.Logger) *Generator {
	return &Generator{
		primary:  primary,
		template: NewTemplateStrategy(),
		log:      log.WithComponent("generator"),
	}
}

// Generate produces the document. The second return value reports whether
// the fallback strategy was used.
func (g *Generator) Generate(ctx context.Context, input Input) (models.GeneratedDocument, bool) {
	if g.primary != nil {
		doc, err := g.primary.Generate(ctx, input)
		if err == nil {
			return doc, false
		}
		g.log.Warn().Err(err).Str("content_type", string(input.ContentType)).
			Msg("Primary generation failed, using template strategy")
	}

	doc, _ := g.template.Generate(ctx, input)
	return doc, g.primary != nil
}
