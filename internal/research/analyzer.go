package research

import (
	"strings"
	"unicode/utf8"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
)

// painCategories maps each pain-point label to its indicator lexicon.
// Matching is plain lowercase substring search over post and comment text.
var painCategories = map[string][]string{
	"confusion":        {"confused", "don't understand", "dont understand", "unclear", "makes no sense", "lost", "no idea"},
	"overwhelm":        {"overwhelmed", "too many options", "too much information", "where to start", "so many choices"},
	"cost_concerns":    {"expensive", "can't afford", "cant afford", "overpriced", "budget", "cheap", "cost too much", "rip off", "ripoff"},
	"complexity":       {"complicated", "too complex", "difficult", "hard to", "steep learning curve", "not intuitive"},
	"trust_issues":     {"scam", "fake", "don't trust", "dont trust", "misleading", "dishonest", "shady", "sketchy"},
	"support_needed":   {"help", "need advice", "please advise", "any suggestions", "support", "guidance"},
	"quality_concerns": {"broke", "broken", "stopped working", "poor quality", "fell apart", "defective", "unreliable"},
	"time_constraints": {"no time", "takes forever", "too long", "waste of time", "time consuming"},
}

// emotionalIndicators maps emotional-language labels to trigger words
var emotionalIndicators = map[string][]string{
	"frustrated":   {"frustrated", "frustrating", "annoyed", "annoying", "fed up"},
	"angry":        {"angry", "furious", "mad", "outraged"},
	"worried":      {"worried", "anxious", "nervous", "scared", "afraid"},
	"disappointed": {"disappointed", "letdown", "let down", "regret"},
	"hopeful":      {"hopeful", "excited", "looking forward", "can't wait", "cant wait"},
}

// painIndicators is the flat lexicon used for the relevance shortcut:
// text mentioning any of these is worth keeping even on weak topic overlap.
var painIndicators = []string{
	"problem", "issue", "stuck", "confused", "frustrated", "broken",
	"help", "scam", "disappointed", "overwhelmed", "struggling",
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "what": true, "how": true, "are": true,
	"was": true, "you": true, "your": true, "have": true, "has": true,
	"best": true, "can": true, "not": true, "all": true, "about": true,
}

// significantWords returns the meaningful tokens of a topic
func significantWords(topic string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(topic)) {
		w = strings.Trim(w, ".,!?\"'()[]")
		if len(w) <= 3 || stopWords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

// isRelevant reports whether a piece of text is worth analyzing for a topic.
// Either at least 60% of the topic's significant words appear in the text,
// or the text contains a pain indicator.
func isRelevant(topic, text string) bool {
	lower := strings.ToLower(text)

	words := significantWords(topic)
	if len(words) > 0 {
		hits := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				hits++
			}
		}
		if float64(hits)/float64(len(words)) >= 0.6 {
			return true
		}
	}

	for _, indicator := range painIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// containsPainIndicator reports whether text mentions any pain keyword
func containsPainIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range painIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// analyzer accumulates lexical signals across posts and comments of one run
type analyzer struct {
	topic     string
	insights  models.ResearchInsights
	quoteSeen map[string]bool
}

func newAnalyzer(topic string) *analyzer {
	return &analyzer{
		topic: topic,
		insights: models.ResearchInsights{
			PainPoints:        make(map[string]int),
			EmotionalLanguage: make(map[string]int),
			SourceTag:         models.ResearchSourceLive,
		},
		quoteSeen: make(map[string]bool),
	}
}

const (
	maxQuotes    = 5
	maxQuestions = 5
	maxQuoteLen  = 200
)

// addText tallies pain categories, emotional language, quotes and questions
// from one piece of text. isComment marks comment text, which is eligible to
// become a customer quote.
func (a *analyzer) addText(text string, isComment bool) {
	lower := strings.ToLower(text)

	for label, terms := range painCategories {
		for _, term := range terms {
			if strings.Contains(lower, term) {
				a.insights.PainPoints[label]++
				break
			}
		}
	}

	for label, terms := range emotionalIndicators {
		for _, term := range terms {
			if strings.Contains(lower, term) {
				a.insights.EmotionalLanguage[label]++
				break
			}
		}
	}

	if isComment && len(a.insights.CustomerQuotes) < maxQuotes && containsPainIndicator(text) {
		quote := strings.TrimSpace(text)
		if len(quote) > maxQuoteLen {
			cut := maxQuoteLen
			for cut > 0 && !utf8.RuneStart(quote[cut]) {
				cut--
			}
			quote = quote[:cut] + "..."
		}
		if quote != "" && !a.quoteSeen[quote] {
			a.quoteSeen[quote] = true
			a.insights.CustomerQuotes = append(a.insights.CustomerQuotes, quote)
		}
	}

	a.collectQuestions(text)
}

// collectQuestions pulls out question sentences that mention the topic
func (a *analyzer) collectQuestions(text string) {
	if len(a.insights.FrequentQuestions) >= maxQuestions {
		return
	}
	words := significantWords(a.topic)

	for _, sentence := range strings.Split(text, "?") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || len(sentence) > 250 {
			continue
		}
		// A question sentence is the tail after the previous terminator
		if idx := strings.LastIndexAny(sentence, ".!\n"); idx >= 0 {
			sentence = strings.TrimSpace(sentence[idx+1:])
		}
		if len(sentence) < 15 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, w := range words {
			if strings.Contains(lower, w) {
				a.insights.FrequentQuestions = append(a.insights.FrequentQuestions, sentence+"?")
				break
			}
		}
		if len(a.insights.FrequentQuestions) >= maxQuestions {
			return
		}
	}
}

// finish derives the quality score and returns the accumulated insights.
// Pain points are never left empty: a generic support bucket covers the
// case where matching found nothing at all.
func (a *analyzer) finish() models.ResearchInsights {
	if len(a.insights.PainPoints) == 0 {
		a.insights.PainPoints["support_needed"] = 1
	}

	score := float64(a.insights.PostsAnalyzed)*10 +
		float64(a.insights.CommentsAnalyzed)*2 +
		float64(len(a.insights.CustomerQuotes))*5 +
		float64(len(a.insights.FrequentQuestions))*3
	if score > 100 {
		score = 100
	}
	a.insights.ResearchQualityScore = score

	return a.insights
}
