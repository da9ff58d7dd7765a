package models

import "strings"

// BusinessContext captures the business framing supplied with a generation request
type BusinessContext struct {
	Industry        string `json:"industry" validate:"required"`
	TargetAudience  string `json:"target_audience" validate:"required"`
	BusinessType    string `json:"business_type" validate:"required"`
	ContentGoal     string `json:"content_goal" validate:"required"`
	UniqueValueProp string `json:"unique_value_prop" validate:"required"`
	BrandVoice      string `json:"brand_voice" validate:"required"`
}

// HumanInputs carries first-hand knowledge the user contributes to the draft
type HumanInputs struct {
	CustomerPainPoints string `json:"customer_pain_points" validate:"required"`
	FrequentQuestions  string `json:"frequent_questions" validate:"required"`
	SuccessStory       string `json:"success_story"`
}

// HasContent reports whether any human input field was actually filled in
func (h HumanInputs) HasContent() bool {
	return strings.TrimSpace(h.CustomerPainPoints) != "" ||
		strings.TrimSpace(h.FrequentQuestions) != "" ||
		strings.TrimSpace(h.SuccessStory) != ""
}

// RequestContext is the immutable input record for one pipeline run.
// It is created once per inbound request and never mutated.
type RequestContext struct {
	Topic             string          `json:"topic" validate:"required"`
	TargetCommunities []string        `json:"target_communities" validate:"required,min=1,dive,required"`
	Business          BusinessContext `json:"business_context" validate:"required"`
	Human             HumanInputs     `json:"human_inputs" validate:"required"`
}
