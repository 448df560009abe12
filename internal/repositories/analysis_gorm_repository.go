package repositories

import (
	"errors"
	"fmt"

	"gutsense/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAnalysisRepository is a GORM implementation of AnalysisRepository.
type GORMAnalysisRepository struct {
	db *gorm.DB
}

// NewGORMAnalysisRepository creates a new instance of GORMAnalysisRepository.
func NewGORMAnalysisRepository(db *gorm.DB) *GORMAnalysisRepository {
	return &GORMAnalysisRepository{
		db: db,
	}
}

// Create inserts a new analysis record.
func (r *GORMAnalysisRepository) Create(analysis *models.FoodAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create food analysis: %w", err)
	}
	return nil
}

// ListForUser returns the user's analyses ordered by creation time, most
// recent first.
func (r *GORMAnalysisRepository) ListForUser(userID string, limit, offset int) ([]models.FoodAnalysis, error) {
	var analyses []models.FoodAnalysis
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses for user %s: %w", userID, err)
	}
	return analyses, nil
}

// GetByID retrieves one analysis owned by the given user.
func (r *GORMAnalysisRepository) GetByID(userID, id string) (*models.FoodAnalysis, error) {
	var analysis models.FoodAnalysis
	err := r.db.First(&analysis, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("food analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get food analysis %s: %w", id, err)
	}
	return &analysis, nil
}

// DeleteByID removes one analysis owned by the given user. Deleting an
// already-deleted record returns ErrNotFound.
func (r *GORMAnalysisRepository) DeleteByID(userID, id string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.FoodAnalysis{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete food analysis %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("food analysis %s: %w", id, ErrNotFound)
	}
	return nil
}

// ClearForUser removes all of the user's analyses.
func (r *GORMAnalysisRepository) ClearForUser(userID string) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.FoodAnalysis{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear analyses for user %s: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

// StatsForUser aggregates counts per reaction and per category plus a recent
// tail of up to ten analyses.
func (r *GORMAnalysisRepository) StatsForUser(userID string) (*AnalysisStats, error) {
	stats := &AnalysisStats{
		ByReaction: make(map[string]int64),
		ByCategory: make(map[string]int64),
	}

	err := r.db.Model(&models.FoodAnalysis{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalAnalyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count analyses for user %s: %w", userID, err)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var reactions []bucket
	err = r.db.Model(&models.FoodAnalysis{}).
		Select("reaction AS key, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("reaction").
		Scan(&reactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reactions for user %s: %w", userID, err)
	}
	for _, b := range reactions {
		stats.ByReaction[b.Key] = b.Count
	}

	var categories []bucket
	err = r.db.Model(&models.FoodAnalysis{}).
		Select("food_category AS key, COUNT(*) AS count").
		Where("user_id = ? AND food_category <> ''", userID).
		Group("food_category").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories for user %s: %w", userID, err)
	}
	for _, b := range categories {
		stats.ByCategory[b.Key] = b.Count
	}

	recent, err := r.ListForUser(userID, 10, 0)
	if err != nil {
		return nil, err
	}
	stats.Recent = recent

	return stats, nil
}
