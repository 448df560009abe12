package services_test

import (
	"testing"

	"gutsense/internal/engine"
	"gutsense/internal/repositories"
	"gutsense/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestProfileService_UpsertProfile(t *testing.T) {
	repo := repositories.NewMockProfileRepository()
	svc := services.NewProfileService(repo)

	profile, err := svc.UpsertProfile("user-1", services.ProfileInput{
		GutType:        engine.GutTypeHighInflammation,
		Sensitivities:  []string{engine.SensitivityLactose, engine.SensitivityAcidity},
		SpiceTolerance: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, []string{engine.SensitivityLactose, engine.SensitivityAcidity}, profile.SensitivityList())

	// Upserting again replaces the row instead of creating a second one.
	firstID := profile.ID
	updated, err := svc.UpsertProfile("user-1", services.ProfileInput{
		GutType:        engine.GutTypeBalanced,
		SpiceTolerance: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, firstID, updated.ID)
	assert.Equal(t, engine.GutTypeBalanced, updated.GutType)
	assert.Empty(t, updated.SensitivityList())
}

func TestProfileService_UpsertProfileValidation(t *testing.T) {
	repo := repositories.NewMockProfileRepository()
	svc := services.NewProfileService(repo)

	_, err := svc.UpsertProfile("user-1", services.ProfileInput{
		GutType:        "cast_iron",
		SpiceTolerance: 2,
	})
	assert.ErrorIs(t, err, engine.ErrInvalidProfile)

	_, err = svc.UpsertProfile("user-1", services.ProfileInput{
		GutType:        engine.GutTypeBalanced,
		SpiceTolerance: 5,
	})
	assert.ErrorIs(t, err, engine.ErrInvalidProfile)

	_, err = svc.UpsertProfile("user-1", services.ProfileInput{
		GutType:        engine.GutTypeBalanced,
		Sensitivities:  []string{"gluten"},
		SpiceTolerance: 2,
	})
	assert.ErrorIs(t, err, engine.ErrInvalidProfile)
}

func TestProfileService_GetProfileDefaults(t *testing.T) {
	repo := repositories.NewMockProfileRepository()
	svc := services.NewProfileService(repo)

	// Missing profile yields the documented defaults, never an error.
	profile, stored, err := svc.GetProfile("user-1")
	assert.NoError(t, err)
	assert.False(t, stored)
	assert.Equal(t, engine.GutTypeBalanced, profile.GutType)
	assert.Equal(t, engine.SpiceToleranceDefault, profile.SpiceTolerance)
	assert.Empty(t, profile.SensitivityList())

	// The defaults must never trip the sensitivity or spice rules.
	result, err := engine.Classify([]engine.Category{engine.CategoryDairy, engine.CategorySpicy}, services.EngineProfile(profile))
	assert.NoError(t, err)
	assert.NotEqual(t, engine.ReactionAvoid, result.Reaction)

	// A stored profile is returned as-is.
	_, err = svc.UpsertProfile("user-1", services.ProfileInput{
		GutType:        engine.GutTypeLowDiversity,
		SpiceTolerance: 1,
	})
	assert.NoError(t, err)

	profile, stored, err = svc.GetProfile("user-1")
	assert.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, engine.GutTypeLowDiversity, profile.GutType)
}

func TestProfileService_DeleteProfile(t *testing.T) {
	repo := repositories.NewMockProfileRepository()
	svc := services.NewProfileService(repo)

	_, err := svc.UpsertProfile("user-1", services.ProfileInput{
		GutType:        engine.GutTypeBalanced,
		SpiceTolerance: 2,
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteProfile("user-1"))
	// Deleting again reports not found.
	assert.True(t, repositories.IsNotFound(svc.DeleteProfile("user-1")))

	// After deletion the defaults apply again.
	profile, stored, err := svc.GetProfile("user-1")
	assert.NoError(t, err)
	assert.False(t, stored)
	assert.Equal(t, engine.GutTypeBalanced, profile.GutType)
}
