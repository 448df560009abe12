package models

import (
	"strings"

	"gorm.io/gorm"
)

// GutProfile stores a user's gut-health baseline. At most one row per user,
// enforced by the unique index on UserID.
type GutProfile struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID          string `json:"user_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required,uuid"`
	GutType         string `json:"gut_type" gorm:"type:varchar(32)" validate:"required"`
	Sensitivities   string `json:"-" gorm:"type:text"` // comma-separated tags
	SpiceTolerance  int    `json:"spice_tolerance" gorm:"default:2" validate:"min=1,max=3"`
	AdditionalNotes string `json:"additional_notes" gorm:"type:text"`
	gorm.Model
}

// SensitivityList splits the stored comma-separated tags into a slice.
// An empty column yields an empty slice, not [""].
func (p *GutProfile) SensitivityList() []string {
	if p.Sensitivities == "" {
		return []string{}
	}
	return strings.Split(p.Sensitivities, ",")
}

// SetSensitivities stores the given tags as a comma-separated string.
func (p *GutProfile) SetSensitivities(tags []string) {
	p.Sensitivities = strings.Join(tags, ",")
}
