package handlers

import (
	"errors"
	"log"

	"gutsense/internal/engine"
	"gutsense/internal/middleware"
	"gutsense/internal/models"
	"gutsense/internal/repositories"
	"gutsense/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FoodHandler handles HTTP requests for food analysis and history.
type FoodHandler struct {
	service *services.AnalysisService
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(service *services.AnalysisService) *FoodHandler {
	return &FoodHandler{
		service: service,
	}
}

// RegisterRoutes registers the food routes with the Fiber app.
func (h *FoodHandler) RegisterRoutes(router fiber.Router) {
	foodRoutes := router.Group("/food")
	foodRoutes.Post("/analyze", h.HandleAnalyze)
	foodRoutes.Get("/history", h.HandleHistory)
	foodRoutes.Get("/history/:id", h.HandleGetAnalysis)
	foodRoutes.Delete("/history/:id", h.HandleDeleteAnalysis)
	foodRoutes.Delete("/history", h.HandleClearHistory)
	foodRoutes.Get("/stats", h.HandleStats)
	foodRoutes.Get("/search", h.HandleSearch)
}

// HandleAnalyze runs one food analysis for the caller.
func (h *FoodHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req services.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := middleware.UserID(c)
	result, err := h.service.Analyze(c.UserContext(), userID, req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidCategory) || errors.Is(err, engine.ErrInvalidProfile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid analysis request",
				"error":   err.Error(),
			})
		}
		log.Printf("Error analyzing food for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not analyze food",
		})
	}

	return c.JSON(result)
}

// historyEntry renders one analysis with alternatives as a list.
func historyEntry(a models.FoodAnalysis) fiber.Map {
	return fiber.Map{
		"id":                 a.ID,
		"food_name":          a.FoodName,
		"food_category":      a.FoodCategory,
		"reaction":           a.Reaction,
		"explanation":        a.Explanation,
		"alternatives":       a.AlternativeList(),
		"confidence_score":   a.ConfidenceScore,
		"recognition_method": a.RecognitionMethod,
		"reported_symptoms":  a.ReportedSymptoms,
		"created_at":         a.CreatedAt,
	}
}

// HandleHistory returns the caller's analyses, most recent first.
func (h *FoodHandler) HandleHistory(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	analyses, err := h.service.GetHistory(userID, limit, offset)
	if err != nil {
		log.Printf("Error loading history for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load history",
		})
	}

	entries := make([]fiber.Map, 0, len(analyses))
	for _, a := range analyses {
		entries = append(entries, historyEntry(a))
	}
	return c.JSON(fiber.Map{
		"history": entries,
	})
}

// HandleGetAnalysis returns one analysis owned by the caller.
func (h *FoodHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id := c.Params("id")

	analysis, err := h.service.GetAnalysis(userID, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Food analysis not found",
			})
		}
		log.Printf("Error loading analysis %s for user %s: %v", id, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load food analysis",
		})
	}
	return c.JSON(historyEntry(*analysis))
}

// HandleDeleteAnalysis removes one analysis owned by the caller. Repeating
// the delete yields 404, not an error escalation.
func (h *FoodHandler) HandleDeleteAnalysis(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id := c.Params("id")

	if err := h.service.DeleteAnalysis(userID, id); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Food analysis not found",
			})
		}
		log.Printf("Error deleting analysis %s for user %s: %v", id, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete food analysis",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Food analysis deleted successfully",
	})
}

// HandleClearHistory removes all of the caller's analyses.
func (h *FoodHandler) HandleClearHistory(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	deleted, err := h.service.ClearHistory(userID)
	if err != nil {
		log.Printf("Error clearing history for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear food history",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Food history cleared successfully",
		"deleted": deleted,
	})
}

// HandleStats returns aggregate counts for the caller's history.
func (h *FoodHandler) HandleStats(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	stats, err := h.service.GetStats(userID)
	if err != nil {
		log.Printf("Error loading stats for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load stats",
		})
	}

	recent := make([]fiber.Map, 0, len(stats.Recent))
	for _, a := range stats.Recent {
		recent = append(recent, fiber.Map{
			"food_name": a.FoodName,
			"reaction":  a.Reaction,
			"date":      a.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"total_analyses":  stats.TotalAnalyses,
		"by_reaction":     stats.ByReaction,
		"by_category":     stats.ByCategory,
		"recent_analyses": recent,
	})
}

// HandleSearch filters the demo food catalog.
func (h *FoodHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	limit := c.QueryInt("limit", 10)

	return c.JSON(fiber.Map{
		"query":   query,
		"results": h.service.SearchFoods(query, limit),
	})
}
