package handlers

import (
	"errors"
	"log"

	"gutsense/internal/engine"
	"gutsense/internal/middleware"
	"gutsense/internal/models"
	"gutsense/internal/repositories"
	"gutsense/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for gut profiles.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the gut profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/gut-profile")
	profileRoutes.Get("/gut-types", h.HandleGutTypes)
	profileRoutes.Get("/sensitivities", h.HandleSensitivities)
	profileRoutes.Post("/", h.HandleUpsert)
	profileRoutes.Put("/", h.HandleUpsert)
	profileRoutes.Get("/", h.HandleGet)
	profileRoutes.Delete("/", h.HandleDelete)
}

// profileResponse renders a profile with sensitivities as a list.
func profileResponse(p *models.GutProfile, stored bool) fiber.Map {
	return fiber.Map{
		"id":               p.ID,
		"user_id":          p.UserID,
		"gut_type":         p.GutType,
		"sensitivities":    p.SensitivityList(),
		"spice_tolerance":  p.SpiceTolerance,
		"additional_notes": p.AdditionalNotes,
		"is_default":       !stored,
	}
}

// HandleUpsert creates or replaces the caller's gut profile.
func (h *ProfileHandler) HandleUpsert(c *fiber.Ctx) error {
	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	userID := middleware.UserID(c)
	profile, err := h.service.UpsertProfile(userID, input)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidProfile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid gut profile",
				"error":   err.Error(),
			})
		}
		log.Printf("Error upserting profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save gut profile",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(profileResponse(profile, true))
}

// HandleGet returns the caller's profile, or the documented defaults when no
// profile has been created yet.
func (h *ProfileHandler) HandleGet(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	profile, stored, err := h.service.GetProfile(userID)
	if err != nil {
		log.Printf("Error loading profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load gut profile",
		})
	}
	return c.JSON(profileResponse(profile, stored))
}

// HandleDelete removes the caller's profile.
func (h *ProfileHandler) HandleDelete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if err := h.service.DeleteProfile(userID); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Gut profile not found",
			})
		}
		log.Printf("Error deleting profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete gut profile",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Gut profile deleted successfully",
	})
}

// HandleGutTypes lists the selectable gut types.
func (h *ProfileHandler) HandleGutTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"gut_types": engine.GutTypeListings(),
	})
}

// HandleSensitivities lists the selectable sensitivity tags.
func (h *ProfileHandler) HandleSensitivities(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sensitivities": engine.SensitivityListings(),
	})
}
