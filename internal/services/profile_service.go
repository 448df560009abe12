package services

import (
	"fmt"

	"gutsense/internal/engine"
	"gutsense/internal/models"
	"gutsense/internal/repositories"
)

// ProfileService handles business logic for gut profiles.
type ProfileService struct {
	repo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

// ProfileInput carries the caller-editable fields of a gut profile.
type ProfileInput struct {
	GutType         string   `json:"gut_type" validate:"required"`
	Sensitivities   []string `json:"sensitivities"`
	SpiceTolerance  int      `json:"spice_tolerance" validate:"min=1,max=3"`
	AdditionalNotes string   `json:"additional_notes"`
}

// UpsertProfile validates the input against the registry and writes it as the
// user's profile, replacing any existing one.
func (s *ProfileService) UpsertProfile(userID string, input ProfileInput) (*models.GutProfile, error) {
	if !engine.IsValidGutType(input.GutType) {
		return nil, fmt.Errorf("%w: unknown gut type %q", engine.ErrInvalidProfile, input.GutType)
	}
	if !engine.IsValidSpiceTolerance(input.SpiceTolerance) {
		return nil, fmt.Errorf("%w: spice tolerance %d out of range", engine.ErrInvalidProfile, input.SpiceTolerance)
	}
	for _, tag := range input.Sensitivities {
		if !engine.IsValidSensitivity(tag) {
			return nil, fmt.Errorf("%w: unknown sensitivity %q", engine.ErrInvalidProfile, tag)
		}
	}

	profile := &models.GutProfile{
		UserID:          userID,
		GutType:         input.GutType,
		SpiceTolerance:  input.SpiceTolerance,
		AdditionalNotes: input.AdditionalNotes,
	}
	profile.SetSensitivities(input.Sensitivities)

	if err := s.repo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the user's stored profile, or the documented defaults
// when none exists. The second return value reports whether the profile came
// from storage. A missing profile is never an error.
func (s *ProfileService) GetProfile(userID string) (*models.GutProfile, bool, error) {
	profile, err := s.repo.GetByUserID(userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			defaults := engine.DefaultProfile()
			p := &models.GutProfile{
				UserID:         userID,
				GutType:        defaults.GutType,
				SpiceTolerance: defaults.SpiceTolerance,
			}
			p.SetSensitivities(defaults.Sensitivities)
			return p, false, nil
		}
		return nil, false, err
	}
	return profile, true, nil
}

// DeleteProfile removes the user's profile. Deleting a missing profile
// surfaces the repository's not-found error.
func (s *ProfileService) DeleteProfile(userID string) error {
	return s.repo.DeleteByUserID(userID)
}

// EngineProfile converts a stored profile into the engine's input form.
func EngineProfile(p *models.GutProfile) engine.Profile {
	return engine.Profile{
		GutType:        p.GutType,
		Sensitivities:  p.SensitivityList(),
		SpiceTolerance: p.SpiceTolerance,
	}
}
