package models

// ResearchSource tags which research path produced the insights
type ResearchSource string

const (
	ResearchSourceLive     ResearchSource = "live"
	ResearchSourceFallback ResearchSource = "fallback"
)

// ResearchInsights is the fixed-shape output of the social research stage.
// PainPoints is always non-empty, live or fallback; downstream stages must
// not branch on SourceTag.
type ResearchInsights struct {
	PainPoints           map[string]int `json:"pain_points"`
	CustomerQuotes       []string       `json:"customer_quotes"`
	FrequentQuestions    []string       `json:"frequent_questions"`
	EmotionalLanguage    map[string]int `json:"emotional_language"`
	PostsAnalyzed        int            `json:"posts_analyzed"`
	CommentsAnalyzed     int            `json:"comments_analyzed"`
	ResearchQualityScore float64        `json:"research_quality_score"`
	SourceTag            ResearchSource `json:"source_tag"`
}

// TopPainPoints returns up to n pain point labels ordered by intensity count
func (r ResearchInsights) TopPainPoints(n int) []string {
	type entry struct {
		label string
		count int
	}
	entries := make([]entry, 0, len(r.PainPoints))
	for label, count := range r.PainPoints {
		entries = append(entries, entry{label, count})
	}
	// Insertion sort keeps the ordering stable for equal counts without
	// pulling in a comparator; the map is small.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0; j-- {
			if entries[j].count > entries[j-1].count ||
				(entries[j].count == entries[j-1].count && entries[j].label < entries[j-1].label) {
				entries[j], entries[j-1] = entries[j-1], entries[j]
			} else {
				break
			}
		}
	}
	if n > len(entries) {
		n = len(entries)
	}
	labels := make([]string, 0, n)
	for _, e := range entries[:n] {
		labels = append(labels, e.label)
	}
	return labels
}
