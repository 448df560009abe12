package repositories

import "gutsense/internal/models"

// AnalysisStats aggregates a user's analysis history.
type AnalysisStats struct {
	TotalAnalyses int64                 `json:"total_analyses"`
	ByReaction    map[string]int64      `json:"by_reaction"`
	ByCategory    map[string]int64      `json:"by_category"`
	Recent        []models.FoodAnalysis `json:"recent_analyses"`
}

// AnalysisRepository defines the interface for food analysis data access.
// Every read and delete is scoped to the owning user; IDs belonging to other
// users behave exactly like missing IDs.
type AnalysisRepository interface {
	Create(analysis *models.FoodAnalysis) error
	// ListForUser returns the user's analyses most recent first.
	ListForUser(userID string, limit, offset int) ([]models.FoodAnalysis, error)
	GetByID(userID, id string) (*models.FoodAnalysis, error)
	DeleteByID(userID, id string) error
	// ClearForUser deletes all of the user's analyses and returns the count.
	ClearForUser(userID string) (int64, error)
	StatsForUser(userID string) (*AnalysisStats, error)
}
