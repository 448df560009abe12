package repositories

import (
	"fmt"
	"sort"
	"sync"

	"gutsense/internal/models"

	"github.com/google/uuid"
)

// MockAnalysisRepository is an in-memory implementation of AnalysisRepository.
type MockAnalysisRepository struct {
	analyses map[string]models.FoodAnalysis
	mu       sync.RWMutex
}

// NewMockAnalysisRepository creates a new instance of MockAnalysisRepository.
func NewMockAnalysisRepository() *MockAnalysisRepository {
	return &MockAnalysisRepository{
		analyses: make(map[string]models.FoodAnalysis),
	}
}

// Create adds a new analysis record.
func (r *MockAnalysisRepository) Create(analysis *models.FoodAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	r.analyses[analysis.ID] = *analysis
	return nil
}

// ListForUser returns the user's analyses most recent first.
func (r *MockAnalysisRepository) ListForUser(userID string, limit, offset int) ([]models.FoodAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.FoodAnalysis
	for _, a := range r.analyses {
		if a.UserID == userID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	if offset >= len(list) {
		return []models.FoodAnalysis{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// GetByID returns one analysis owned by the given user.
func (r *MockAnalysisRepository) GetByID(userID, id string) (*models.FoodAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analysis, ok := r.analyses[id]
	if !ok || analysis.UserID != userID {
		return nil, fmt.Errorf("food analysis %s: %w", id, ErrNotFound)
	}
	return &analysis, nil
}

// DeleteByID removes one analysis owned by the given user.
func (r *MockAnalysisRepository) DeleteByID(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	analysis, ok := r.analyses[id]
	if !ok || analysis.UserID != userID {
		return fmt.Errorf("food analysis %s: %w", id, ErrNotFound)
	}
	delete(r.analyses, id)
	return nil
}

// ClearForUser removes all of the user's analyses.
func (r *MockAnalysisRepository) ClearForUser(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, a := range r.analyses {
		if a.UserID == userID {
			delete(r.analyses, id)
			deleted++
		}
	}
	return deleted, nil
}

// StatsForUser aggregates the user's analyses in memory.
func (r *MockAnalysisRepository) StatsForUser(userID string) (*AnalysisStats, error) {
	stats := &AnalysisStats{
		ByReaction: make(map[string]int64),
		ByCategory: make(map[string]int64),
	}

	r.mu.RLock()
	for _, a := range r.analyses {
		if a.UserID != userID {
			continue
		}
		stats.TotalAnalyses++
		stats.ByReaction[a.Reaction]++
		if a.FoodCategory != "" {
			stats.ByCategory[a.FoodCategory]++
		}
	}
	r.mu.RUnlock()

	recent, err := r.ListForUser(userID, 10, 0)
	if err != nil {
		return nil, err
	}
	stats.Recent = recent
	return stats, nil
}
