package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringSlice stores a string array as a JSON column
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	return json.Unmarshal(value.([]byte), s)
}

// JSON stores arbitrary JSON data in a single column
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	return json.Unmarshal(value.([]byte), j)
}

// Run is the persisted summary of one completed pipeline run
type Run struct {
	ID             string      `gorm:"primaryKey" json:"id"` // UUID
	Topic          string      `gorm:"index;not null" json:"topic"`
	Communities    StringSlice `gorm:"type:json" json:"communities"`
	ContentType    string      `json:"content_type"`
	WordCount      int         `json:"word_count"`
	QualityScore   float64     `json:"quality_score"`
	EEATScore      float64     `json:"eeat_score"`
	ResearchSource string      `json:"research_source"` // live or fallback
	FallbackStages int         `json:"fallback_stages"`
	StageModes     JSON        `gorm:"type:json" json:"stage_modes"`
	Document       string      `gorm:"type:text" json:"document"`
	Result         JSON        `gorm:"type:json" json:"result"` // full PipelineResult snapshot
	CreatedAt      time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
}

// NewRun flattens a PipelineResult into its persisted summary form
func NewRun(result *PipelineResult) *Run {
	stageModes := make(JSON, len(result.Status.Stages))
	for stage, mode := range result.Status.Stages {
		stageModes[stage] = string(mode)
	}

	var snapshot JSON
	if data, err := json.Marshal(result); err == nil {
		_ = json.Unmarshal(data, &snapshot)
	}

	return &Run{
		ID:             result.RunID,
		Topic:          result.Request.Topic,
		Communities:    StringSlice(result.Request.TargetCommunities),
		ContentType:    string(result.Document.ContentType),
		WordCount:      result.Document.WordCount,
		QualityScore:   result.Quality.OverallScore,
		EEATScore:      result.EEAT.OverallScore,
		ResearchSource: string(result.Research.SourceTag),
		FallbackStages: result.Status.FallbackCount(),
		StageModes:     stageModes,
		Document:       result.Document.BodyText,
		Result:         snapshot,
		CreatedAt:      result.StartedAt,
	}
}
