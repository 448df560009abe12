package repositories

import "gutsense/internal/models"

// ProfileRepository defines the interface for gut profile data access.
// Each user has at most one profile row.
type ProfileRepository interface {
	// Upsert creates the user's profile or overwrites the existing one
	// atomically (last write wins).
	Upsert(profile *models.GutProfile) error
	// GetByUserID returns ErrNotFound when the user has no profile; callers
	// decide whether to substitute defaults.
	GetByUserID(userID string) (*models.GutProfile, error)
	DeleteByUserID(userID string) error
}
