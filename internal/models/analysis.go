package models

import (
	"strings"
	"time"
)

// Recognition methods recorded on each analysis so callers can tell
// AI-derived verdicts from locally inferred ones.
const (
	RecognitionRules     = "rules"
	RecognitionAI        = "ai"
	RecognitionHeuristic = "heuristic"
)

// FoodAnalysis is an immutable historical record of one analysis call.
// Rows are only ever inserted and deleted, never updated.
type FoodAnalysis struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string    `json:"user_id" gorm:"index;type:varchar(36)"`
	FoodName          string    `json:"food_name" gorm:"type:varchar(255)"`
	FoodCategory      string    `json:"food_category" gorm:"type:varchar(64)"`
	Reaction          string    `json:"reaction" gorm:"type:varchar(16)"`
	Explanation       string    `json:"explanation" gorm:"type:text"`
	Alternatives      string    `json:"-" gorm:"type:text"` // comma-separated, ordered
	ConfidenceScore   int       `json:"confidence_score" gorm:"default:85"`
	RecognitionMethod string    `json:"recognition_method" gorm:"type:varchar(16)"`
	ReportedSymptoms  string    `json:"reported_symptoms,omitempty" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
}

// AlternativeList splits the stored alternatives preserving their order.
func (a *FoodAnalysis) AlternativeList() []string {
	if a.Alternatives == "" {
		return []string{}
	}
	return strings.Split(a.Alternatives, ",")
}

// SetAlternatives stores the given food names as a comma-separated string.
func (a *FoodAnalysis) SetAlternatives(names []string) {
	a.Alternatives = strings.Join(names, ",")
}
