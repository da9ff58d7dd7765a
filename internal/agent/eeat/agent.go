package eeat

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/ai"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

// ymylKeywords flag topics held to the stricter "Your Money or Your Life"
// quality bar.
var ymylKeywords = []string{
	"finance", "money", "invest", "loan", "insurance", "tax", "mortgage",
	"retirement", "credit", "health", "medical", "medicine", "disease",
	"treatment", "drug", "diet", "legal", "law", "attorney", "lawyer",
	"safety",
}

// Component score bases. YMYL topics start lower: unsupported claims cost
// more there.
const (
	baseScore     = 5.0
	baseScoreYMYL = 4.0
	maxScore      = 10.0
)

// Rubric weights for the overall score
var (
	weightsDefault = map[string]float64{
		models.EEATExperience:        0.25,
		models.EEATExpertise:         0.20,
		models.EEATAuthoritativeness: 0.20,
		models.EEATTrustworthiness:   0.35,
	}
	weightsYMYL = map[string]float64{
		models.EEATExperience:        0.15,
		models.EEATExpertise:         0.30,
		models.EEATAuthoritativeness: 0.15,
		models.EEATTrustworthiness:   0.40,
	}
)

const recommendationsPrompt = `Suggest concrete E-E-A-T improvements for planned content.

Topic: %s
Industry: %s
Weakest rubric components: %s
YMYL topic: %t

Respond in JSON format:
{
  "recommendations": ["<specific actionable improvement>", "..."]
}`

// Agent scores a request against the E-E-A-T rubric. The component scores
// are a pure function of the inputs; only the improvement recommendations
// go through the model.
type Agent struct {
	gateway ai.Gateway
	log     *logger.Logger
}

// NewAgent creates an E-E-A-T assessment agent. gateway may be nil, in which
// case recommendations always come from the canned set.
func NewAgent(gateway ai.Gateway, log *logger.Logger) *Agent {
	return &Agent{
		gateway: gateway,
		log:     log.WithComponent("eeat"),
	}
}

// IsYMYL reports whether the topic or industry hits a YMYL category
func IsYMYL(topic, industry string) bool {
	haystack := strings.ToLower(topic + " " + industry)
	for _, kw := range ymylKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// Assess computes the deterministic rubric scores and asks the model for
// improvement recommendations. When the model is unavailable the returned
// assessment is still complete (canned recommendations) and the error tells
// the orchestrator the stage degraded.
func (a *Agent) Assess(ctx context.Context, topic string, business models.BusinessContext, human models.HumanInputs) (models.EEATAssessment, error) {
	assessment := Score(topic, business, human)

	recommendations, err := a.generateRecommendations(ctx, topic, business, assessment)
	if err != nil {
		a.log.Warn().Err(err).Msg("Falling back to canned E-E-A-T recommendations")
		assessment.ImprovementRecommendations = cannedRecommendations(assessment)
		return assessment, err
	}

	assessment.ImprovementRecommendations = recommendations
	return assessment, nil
}

// Score is the deterministic E-E-A-T formula: category-dependent bases,
// fixed boosts for populated business context, a 10.0 cap per component,
// and a YMYL-shifted weighted overall.
func Score(topic string, business models.BusinessContext, human models.HumanInputs) models.EEATAssessment {
	isYMYL := IsYMYL(topic, business.Industry)

	base := baseScore
	if isYMYL {
		base = baseScoreYMYL
	}

	scores := map[string]float64{
		models.EEATExperience:        base,
		models.EEATExpertise:         base,
		models.EEATAuthoritativeness: base,
		models.EEATTrustworthiness:   base,
	}

	// Experience: first-hand material supplied by the user
	if strings.TrimSpace(human.SuccessStory) != "" {
		scores[models.EEATExperience] += 1.5
	}
	if len(strings.TrimSpace(human.CustomerPainPoints)) > 50 {
		scores[models.EEATExperience] += 1.0
	}

	// Expertise: declared industry footing and depth of the value proposition
	if strings.TrimSpace(business.Industry) != "" {
		scores[models.EEATExpertise] += 1.5
	}
	if len(strings.TrimSpace(business.UniqueValueProp)) > 50 {
		scores[models.EEATExpertise] += 1.0
	}

	// Authoritativeness: how clearly the business positions itself
	if strings.TrimSpace(business.BusinessType) != "" {
		scores[models.EEATAuthoritativeness] += 1.0
	}
	if strings.TrimSpace(business.ContentGoal) != "" {
		scores[models.EEATAuthoritativeness] += 1.0
	}
	if strings.TrimSpace(business.UniqueValueProp) != "" {
		scores[models.EEATAuthoritativeness] += 0.5
	}

	// Trustworthiness: willingness to answer real customer questions
	if strings.TrimSpace(human.FrequentQuestions) != "" {
		scores[models.EEATTrustworthiness] += 1.5
	}
	if strings.TrimSpace(business.BrandVoice) != "" {
		scores[models.EEATTrustworthiness] += 1.0
	}

	for k, v := range scores {
		if v > maxScore {
			scores[k] = maxScore
		}
	}

	weights := weightsDefault
	if isYMYL {
		weights = weightsYMYL
	}

	overall := 0.0
	for component, weight := range weights {
		overall += scores[component] * weight
	}

	return models.EEATAssessment{
		OverallScore:    overall,
		ComponentScores: scores,
		IsYMYL:          isYMYL,
	}
}

type recommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

func (a *Agent) generateRecommendations(ctx context.Context, topic string, business models.BusinessContext, assessment models.EEATAssessment) ([]string, error) {
	if a.gateway == nil {
		return nil, ai.ErrUpstreamUnavailable
	}

	prompt := fmt.Sprintf(recommendationsPrompt,
		topic,
		business.Industry,
		strings.Join(weakestComponents(assessment, 2), ", "),
		assessment.IsYMYL,
	)

	response, err := a.gateway.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed recommendationsResponse
	if err := ai.ParseJSON(response, &parsed); err != nil {
		a.log.Warn().Err(err).Str("response", response).Msg("Failed to parse recommendations response")
		return nil, err
	}
	if len(parsed.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: empty recommendations", ai.ErrMalformedResponse)
	}
	return parsed.Recommendations, nil
}

// weakestComponents returns the n lowest-scoring component names
func weakestComponents(assessment models.EEATAssessment, n int) []string {
	components := []string{
		models.EEATExperience,
		models.EEATExpertise,
		models.EEATAuthoritativeness,
		models.EEATTrustworthiness,
	}
	for i := 0; i < len(components); i++ {
		for j := i + 1; j < len(components); j++ {
			if assessment.ComponentScores[components[j]] < assessment.ComponentScores[components[i]] {
				components[i], components[j] = components[j], components[i]
			}
		}
	}
	if n > len(components) {
		n = len(components)
	}
	return components[:n]
}

// cannedRecommendations targets the weakest components with fixed advice
func cannedRecommendations(assessment models.EEATAssessment) []string {
	advice := map[string]string{
		models.EEATExperience:        "Add a first-hand success story or case study with concrete numbers.",
		models.EEATExpertise:         "Cite your industry background and explain the reasoning behind each claim.",
		models.EEATAuthoritativeness: "State clearly who you are, what your business does, and why readers should listen.",
		models.EEATTrustworthiness:   "Answer the questions customers actually ask, and be upfront about costs and limitations.",
	}

	var recommendations []string
	for _, component := range weakestComponents(assessment, 3) {
		recommendations = append(recommendations, advice[component])
	}
	if assessment.IsYMYL {
		recommendations = append(recommendations, "This is a YMYL topic: back every factual claim with an authoritative source.")
	}
	return recommendations
}
