package repositories

import (
	"errors"
	"fmt"

	"gutsense/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{
		db: db,
	}
}

// Upsert writes the profile using the store's native ON CONFLICT upsert on
// user_id, so concurrent writes to the same user's profile resolve to last
// write wins without explicit locking.
func (r *GORMProfileRepository) Upsert(profile *models.GutProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"gut_type", "sensitivities", "spice_tolerance", "additional_notes", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert gut profile for user %s: %w", profile.UserID, err)
	}
	return nil
}

// GetByUserID retrieves the user's profile.
func (r *GORMProfileRepository) GetByUserID(userID string) (*models.GutProfile, error) {
	var profile models.GutProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("gut profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get gut profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// DeleteByUserID removes the user's profile.
func (r *GORMProfileRepository) DeleteByUserID(userID string) error {
	res := r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.GutProfile{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete gut profile for user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("gut profile for user %s: %w", userID, ErrNotFound)
	}
	return nil
}
