package models

// SearchIntent classifies why someone searches for the topic
type SearchIntent string

const (
	IntentCommercial              SearchIntent = "commercial"
	IntentInformational           SearchIntent = "informational"
	IntentNavigational            SearchIntent = "navigational"
	IntentCommercialInformational SearchIntent = "commercial_informational"
)

// JourneyStage classifies where the searcher sits in the buying journey
type JourneyStage string

const (
	StageAwareness     JourneyStage = "awareness"
	StageConsideration JourneyStage = "consideration"
	StageDecision      JourneyStage = "decision"
)

// IntentRecord is the output of the intent classification stage
type IntentRecord struct {
	PrimaryIntent          SearchIntent `json:"primary_intent"`
	SearchStage            JourneyStage `json:"search_stage"`
	TargetAudience         string       `json:"target_audience"`
	RecommendedContentType ContentType  `json:"recommended_content_type"`
}

// JourneyRecord is the output of the customer journey stage
type JourneyRecord struct {
	PrimaryStage      JourneyStage `json:"primary_stage"`
	KeyPainPoints     []string     `json:"key_pain_points"`
	EmotionalTriggers []string     `json:"emotional_triggers"`
}

// EEATAssessment scores the request against the E-E-A-T rubric.
// All scores are on a 0-10 scale.
type EEATAssessment struct {
	OverallScore               float64            `json:"overall_score"`
	ComponentScores            map[string]float64 `json:"component_scores"`
	IsYMYL                     bool               `json:"is_ymyl"`
	ImprovementRecommendations []string           `json:"improvement_recommendations"`
}

// E-E-A-T component score keys
const (
	EEATExperience        = "experience"
	EEATExpertise         = "expertise"
	EEATAuthoritativeness = "authoritativeness"
	EEATTrustworthiness   = "trustworthiness"
)

// QualityAssessment is the terminal scoring record for a generated document
type QualityAssessment struct {
	OverallScore              float64  `json:"overall_score"`
	PerformancePrediction     string   `json:"performance_prediction"`
	TrafficMultiplierEstimate string   `json:"traffic_multiplier_estimate"`
	CriticalImprovements      []string `json:"critical_improvements"`
}
