package research

import (
	"context"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

// Collector gathers customer-voice insights for a topic across a set of
// communities. Implementations must return a fixed-shape ResearchInsights;
// downstream consumers never branch on which implementation produced it.
type Collector interface {
	ResearchTopic(ctx context.Context, topic string, communities []string, maxPostsPerCommunity int) (models.ResearchInsights, error)
}
