package research

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name     string
		topic    string
		text     string
		relevant bool
	}{
		{
			name:     "strong topic overlap",
			topic:    "best laptops for college students",
			text:     "Looking for laptops that survive four years of college use by students",
			relevant: true,
		},
		{
			name:     "pain indicator without overlap",
			topic:    "best laptops for college students",
			text:     "I am so frustrated with my current setup",
			relevant: true,
		},
		{
			name:     "unrelated text",
			topic:    "best laptops for college students",
			text:     "Here is my sourdough starter recipe",
			relevant: false,
		},
		{
			name:     "partial overlap below threshold",
			topic:    "best laptops for college students",
			text:     "college basketball season starts tonight",
			relevant: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRelevant(tt.topic, tt.text); got != tt.relevant {
				t.Errorf("isRelevant(%q, %q) = %v, want %v", tt.topic, tt.text, got, tt.relevant)
			}
		})
	}
}

func TestSignificantWordsDropsStopWordsAndShortTokens(t *testing.T) {
	words := significantWords("the best laptops for you")
	if len(words) != 1 || words[0] != "laptops" {
		t.Errorf("significantWords = %v, want [laptops]", words)
	}
}

func TestAnalyzerCountsPainCategories(t *testing.T) {
	a := newAnalyzer("laptops")
	a.addText("This is way too expensive and I'm confused by the specs", false)
	a.addText("Honestly overpriced for what you get", false)

	insights := a.finish()
	if insights.PainPoints["cost_concerns"] != 2 {
		t.Errorf("cost_concerns = %d, want 2", insights.PainPoints["cost_concerns"])
	}
	if insights.PainPoints["confusion"] != 1 {
		t.Errorf("confusion = %d, want 1", insights.PainPoints["confusion"])
	}
}

func TestAnalyzerQuotesOnlyFromComments(t *testing.T) {
	a := newAnalyzer("laptops")
	a.addText("post body with a problem in it", false)
	a.addText("comment body describing a problem I had", true)
	a.addText("comment body describing a problem I had", true) // duplicate

	insights := a.finish()
	if len(insights.CustomerQuotes) != 1 {
		t.Fatalf("quotes = %v, want exactly one", insights.CustomerQuotes)
	}
}

func TestAnalyzerQuoteTruncation(t *testing.T) {
	a := newAnalyzer("laptops")
	long := "my problem is " + strings.Repeat("very ", 60) + "long"
	a.addText(long, true)

	insights := a.finish()
	if len(insights.CustomerQuotes) != 1 {
		t.Fatal("expected one quote")
	}
	quote := insights.CustomerQuotes[0]
	if len(quote) > maxQuoteLen+3 {
		t.Errorf("quote length = %d, want <= %d", len(quote), maxQuoteLen+3)
	}
	if !strings.HasSuffix(quote, "...") {
		t.Errorf("truncated quote should end with ellipsis, got %q", quote)
	}
}

func TestAnalyzerQuoteTruncationKeepsValidUTF8(t *testing.T) {
	a := newAnalyzer("laptops")
	// 15-byte prefix so a two-byte rune straddles the truncation point
	long := "my problem was " + strings.Repeat("é", 120)
	a.addText(long, true)

	insights := a.finish()
	if len(insights.CustomerQuotes) != 1 {
		t.Fatal("expected one quote")
	}
	quote := insights.CustomerQuotes[0]
	if !utf8.ValidString(quote) {
		t.Errorf("truncated quote is not valid UTF-8: %q", quote)
	}
	if len(quote) > maxQuoteLen+3 {
		t.Errorf("quote length = %d, want <= %d", len(quote), maxQuoteLen+3)
	}
	if !strings.HasSuffix(quote, "...") {
		t.Errorf("truncated quote should end with ellipsis, got %q", quote)
	}
}

func TestAnalyzerCollectsTopicQuestions(t *testing.T) {
	a := newAnalyzer("laptops")
	a.addText("Which laptops actually last? Also what time is it?", true)

	insights := a.finish()
	if len(insights.FrequentQuestions) != 1 {
		t.Fatalf("questions = %v, want one topic question", insights.FrequentQuestions)
	}
	if !strings.Contains(strings.ToLower(insights.FrequentQuestions[0]), "laptops") {
		t.Errorf("question should mention the topic, got %q", insights.FrequentQuestions[0])
	}
}

func TestFinishNeverLeavesPainPointsEmpty(t *testing.T) {
	a := newAnalyzer("laptops")
	insights := a.finish()
	if insights.PainPoints["support_needed"] != 1 {
		t.Errorf("empty analysis should default to support_needed=1, got %v", insights.PainPoints)
	}
}

func TestFinishQualityScore(t *testing.T) {
	a := newAnalyzer("laptops")
	a.insights.PostsAnalyzed = 3
	a.insights.CommentsAnalyzed = 10

	insights := a.finish()
	if insights.ResearchQualityScore != 50 {
		t.Errorf("quality score = %v, want 50", insights.ResearchQualityScore)
	}

	b := newAnalyzer("laptops")
	b.insights.PostsAnalyzed = 50
	if got := b.finish().ResearchQualityScore; got != 100 {
		t.Errorf("quality score should cap at 100, got %v", got)
	}
}

func TestTopPainPointsOrdering(t *testing.T) {
	insights := models.ResearchInsights{
		PainPoints: map[string]int{
			"confusion":     2,
			"cost_concerns": 5,
			"overwhelm":     2,
			"trust_issues":  1,
		},
	}

	got := insights.TopPainPoints(3)
	want := []string{"cost_concerns", "confusion", "overwhelm"}
	if len(got) != len(want) {
		t.Fatalf("TopPainPoints = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopPainPoints[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
