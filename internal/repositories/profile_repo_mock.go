package repositories

import (
	"fmt"
	"sync"

	"gutsense/internal/models"

	"github.com/google/uuid"
)

// MockProfileRepository is an in-memory implementation of ProfileRepository.
type MockProfileRepository struct {
	profiles map[string]models.GutProfile // keyed by user ID
	mu       sync.RWMutex
}

// NewMockProfileRepository creates a new instance of MockProfileRepository.
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[string]models.GutProfile),
	}
}

// Upsert creates or replaces the user's profile.
func (r *MockProfileRepository) Upsert(profile *models.GutProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	r.profiles[profile.UserID] = *profile
	return nil
}

// GetByUserID returns the user's profile.
func (r *MockProfileRepository) GetByUserID(userID string) (*models.GutProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("gut profile for user %s: %w", userID, ErrNotFound)
	}
	return &profile, nil
}

// DeleteByUserID removes the user's profile.
func (r *MockProfileRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[userID]; !ok {
		return fmt.Errorf("gut profile for user %s: %w", userID, ErrNotFound)
	}
	delete(r.profiles, userID)
	return nil
}
