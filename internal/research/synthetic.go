package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

// SyntheticCollector returns deterministic canned insights keyed off simple
// topic keyword matching. It is the terminal fallback: it cannot fail, and
// its output is shape-identical to live research apart from the source tag.
type SyntheticCollector struct{}

// NewSyntheticCollector creates the terminal fallback collector
func NewSyntheticCollector() *SyntheticCollector {
	return &SyntheticCollector{}
}

var _ Collector = (*SyntheticCollector)(nil)

// ResearchTopic never fails and never touches the network
func (c *SyntheticCollector) ResearchTopic(_ context.Context, topic string, _ []string, _ int) (models.ResearchInsights, error) {
	return SyntheticInsights(topic), nil
}

// SyntheticInsights builds the canned fallback record for a topic
func SyntheticInsights(topic string) models.ResearchInsights {
	lower := strings.ToLower(topic)

	insights := models.ResearchInsights{
		EmotionalLanguage: map[string]int{
			"frustrated": 3,
			"worried":    2,
			"hopeful":    2,
		},
		SourceTag: models.ResearchSourceFallback,
	}

	switch {
	case containsAny(lower, "laptop", "computer", "tech", "software", "phone", "gadget"):
		insights.PainPoints = map[string]int{
			"overwhelm":        8,
			"cost_concerns":    7,
			"complexity":       6,
			"quality_concerns": 4,
			"confusion":        3,
		}
		insights.CustomerQuotes = []string{
			fmt.Sprintf("There are so many options for %s that I don't even know where to start.", topic),
			"I spent weeks comparing specs and still ended up second-guessing my choice.",
			"Half the reviews feel sponsored, it's hard to know what's real.",
		}
	case containsAny(lower, "finance", "money", "invest", "loan", "insurance", "tax"):
		insights.PainPoints = map[string]int{
			"trust_issues":   9,
			"confusion":      7,
			"cost_concerns":  6,
			"complexity":     5,
			"support_needed": 3,
		}
		insights.CustomerQuotes = []string{
			fmt.Sprintf("Everyone explaining %s seems to be selling something.", topic),
			"The fees and fine print are impossible to understand.",
			"I'm scared of making a mistake I can't undo with my money.",
		}
	default:
		insights.PainPoints = map[string]int{
			"confusion":      6,
			"overwhelm":      5,
			"support_needed": 4,
			"cost_concerns":  3,
			"trust_issues":   2,
		}
		insights.CustomerQuotes = []string{
			fmt.Sprintf("I keep getting conflicting advice about %s.", topic),
			"Most guides are too generic to actually help my situation.",
			"I just want a straight answer without the upsell.",
		}
	}

	insights.FrequentQuestions = []string{
		fmt.Sprintf("What should a complete beginner know about %s?", topic),
		fmt.Sprintf("How do I avoid common mistakes with %s?", topic),
		fmt.Sprintf("Is %s worth the money?", topic),
	}

	// Canned data is serviceable but thin; score it accordingly
	insights.ResearchQualityScore = 35
	return insights
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
