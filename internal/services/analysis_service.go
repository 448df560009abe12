package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"gutsense/internal/engine"
	"gutsense/internal/models"
	"gutsense/internal/repositories"
)

// AnalysisEventPublisher publishes analysis-recorded events. Satisfied by
// *rabbitmq.Client.
type AnalysisEventPublisher interface {
	PublishAnalysisRecorded(event map[string]interface{}) error
}

// AnalysisService orchestrates food analysis: classification (AI or local
// heuristic), the rule engine, persistence, and event publication.
type AnalysisService struct {
	analysisRepo repositories.AnalysisRepository
	profileRepo  repositories.ProfileRepository
	classifier   ImageClassifier        // may be nil when no API key is configured
	publisher    AnalysisEventPublisher // may be nil
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	analysisRepo repositories.AnalysisRepository,
	profileRepo repositories.ProfileRepository,
	classifier ImageClassifier,
	publisher AnalysisEventPublisher,
) *AnalysisService {
	return &AnalysisService{
		analysisRepo: analysisRepo,
		profileRepo:  profileRepo,
		classifier:   classifier,
		publisher:    publisher,
	}
}

// AnalyzeRequest is the input for one analysis call. Either FoodName or
// Image (base64) must be present.
type AnalyzeRequest struct {
	FoodName         string `json:"food_name"`
	Image            string `json:"image"`
	FoodCategory     string `json:"food_category"`
	ReportedSymptoms string `json:"reported_symptoms"`
}

// AnalyzeResponse is the result returned to the caller.
type AnalyzeResponse struct {
	ID                string       `json:"id"`
	FoodName          string       `json:"food_name"`
	Reaction          string       `json:"reaction"`
	Explanation       string       `json:"explanation"`
	Alternatives      []string     `json:"alternatives"`
	ConfidenceScore   int          `json:"confidence_score"`
	RecognitionMethod string       `json:"recognition_method"`
	Tips              []engine.Tip `json:"tips"`
}

// Analyze classifies the food, runs the rule engine against the caller's
// profile (or the documented defaults), persists the result, and publishes an
// event. The record is written only after classification has fully completed,
// so a failed AI call never leaves a partial record.
func (s *AnalysisService) Analyze(ctx context.Context, userID string, req AnalyzeRequest) (*AnalyzeResponse, error) {
	if strings.TrimSpace(req.FoodName) == "" && req.Image == "" {
		return nil, fmt.Errorf("%w: food_name or image is required", engine.ErrInvalidCategory)
	}

	foodName := strings.TrimSpace(req.FoodName)
	method := models.RecognitionRules
	var categories []engine.Category
	var classification *FoodClassification

	if req.Image != "" {
		imageData, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: image is not valid base64", engine.ErrInvalidCategory)
		}
		classification, err = s.classifyImage(ctx, imageData)
		if err != nil {
			// Upstream failure: fall back to the local heuristic and flag it.
			log.Printf("AI classification failed, falling back to heuristic: %v", err)
			method = models.RecognitionHeuristic
			classification = nil
		} else {
			method = models.RecognitionAI
			if foodName == "" {
				foodName = classification.Name
			}
			categories = classification.Categories()
		}
	}

	if foodName == "" {
		foodName = "Unknown Food"
	}
	if len(categories) == 0 {
		categories = engine.CategorizeFood(foodName)
	}

	profile, err := s.engineProfile(userID)
	if err != nil {
		return nil, err
	}

	result, err := engine.Classify(categories, profile)
	if err != nil {
		return nil, err
	}

	reaction := result.Reaction
	explanation := fmt.Sprintf("%s: %s", foodName, result.Explanation)
	confidence := result.ConfidenceScore
	alternatives := engine.Alternatives(foodName, reaction)

	if classification != nil {
		// The AI path may upgrade a suitable verdict to excellent and bring
		// richer explanations, but never overrides a caution/avoid verdict
		// derived from the stored profile.
		if classification.Reaction == engine.ReactionExcellent && reaction == engine.ReactionSuitable {
			reaction = engine.ReactionExcellent
		}
		if classification.Explanation != "" {
			explanation = classification.Explanation
		}
		if classification.Confidence > 0 {
			confidence = classification.Confidence
		}
		if len(classification.Alternatives) > 0 {
			alternatives = classification.Alternatives
		}
	}

	record := &models.FoodAnalysis{
		UserID:            userID,
		FoodName:          foodName,
		FoodCategory:      s.recordCategory(req.FoodCategory, categories),
		Reaction:          reaction,
		Explanation:       explanation,
		ConfidenceScore:   confidence,
		RecognitionMethod: method,
		ReportedSymptoms:  req.ReportedSymptoms,
	}
	record.SetAlternatives(alternatives)

	if err := s.analysisRepo.Create(record); err != nil {
		return nil, err
	}

	s.publishRecorded(record)

	return &AnalyzeResponse{
		ID:                record.ID,
		FoodName:          foodName,
		Reaction:          reaction,
		Explanation:       explanation,
		Alternatives:      alternatives,
		ConfidenceScore:   confidence,
		RecognitionMethod: method,
		Tips:              engine.Tips(reaction, categories),
	}, nil
}

// classifyImage calls the external classifier, mapping a missing classifier
// to the same unavailable error as a failed call.
func (s *AnalysisService) classifyImage(ctx context.Context, imageData []byte) (*FoodClassification, error) {
	if s.classifier == nil {
		return nil, fmt.Errorf("%w: no classifier configured", ErrUpstreamUnavailable)
	}
	classification, err := s.classifier.ClassifyFoodImage(ctx, imageData)
	if err != nil {
		if !errors.Is(err, ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		return nil, err
	}
	return classification, nil
}

// engineProfile loads the user's profile, substituting the documented
// defaults when none is stored.
func (s *AnalysisService) engineProfile(userID string) (engine.Profile, error) {
	stored, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return engine.DefaultProfile(), nil
		}
		return engine.Profile{}, err
	}
	return EngineProfile(stored), nil
}

// recordCategory picks the category persisted on the record: an explicit
// caller-supplied one wins, otherwise the first inferred category.
func (s *AnalysisService) recordCategory(explicit string, categories []engine.Category) string {
	if explicit != "" {
		return explicit
	}
	if len(categories) > 0 {
		return string(categories[0])
	}
	return ""
}

func (s *AnalysisService) publishRecorded(record *models.FoodAnalysis) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	event := map[string]interface{}{
		"analysisID": record.ID,
		"userID":     record.UserID,
		"foodName":   record.FoodName,
		"reaction":   record.Reaction,
		"method":     record.RecognitionMethod,
	}
	if err := s.publisher.PublishAnalysisRecorded(event); err != nil {
		log.Printf("Warning: Failed to publish analysis recorded event for %s: %v", record.ID, err)
	}
}

// GetHistory returns the user's analyses, most recent first.
func (s *AnalysisService) GetHistory(userID string, limit, offset int) ([]models.FoodAnalysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.analysisRepo.ListForUser(userID, limit, offset)
}

// GetAnalysis returns one analysis owned by the user.
func (s *AnalysisService) GetAnalysis(userID, id string) (*models.FoodAnalysis, error) {
	return s.analysisRepo.GetByID(userID, id)
}

// DeleteAnalysis removes one analysis owned by the user.
func (s *AnalysisService) DeleteAnalysis(userID, id string) error {
	return s.analysisRepo.DeleteByID(userID, id)
}

// ClearHistory removes all of the user's analyses and returns the count.
func (s *AnalysisService) ClearHistory(userID string) (int64, error) {
	return s.analysisRepo.ClearForUser(userID)
}

// GetStats returns aggregate counts for the user's history.
func (s *AnalysisService) GetStats(userID string) (*repositories.AnalysisStats, error) {
	return s.analysisRepo.StatsForUser(userID)
}

// FoodSearchResult is one entry of the demo food search.
type FoodSearchResult struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Demo food catalog for the search endpoint. A real deployment would query a
// food database here.
var demoFoods = []FoodSearchResult{
	{Name: "Chicken Curry", Category: "spicy", Description: "Spicy Indian dish with chicken"},
	{Name: "Margherita Pizza", Category: "dairy", Description: "Classic pizza with tomato and mozzarella"},
	{Name: "Greek Salad", Category: "gentle", Description: "Fresh salad with feta cheese"},
	{Name: "Fried Rice", Category: "fried", Description: "Stir-fried rice with vegetables"},
	{Name: "Cheeseburger", Category: "processed", Description: "Beef burger with cheese"},
	{Name: "Spaghetti Carbonara", Category: "dairy", Description: "Pasta with eggs and cheese"},
	{Name: "Fish Tacos", Category: "gentle", Description: "Tacos with grilled fish"},
	{Name: "Quinoa Salad", Category: "high_fiber", Description: "Nutritious grain salad"},
	{Name: "Kimchi Bowl", Category: "fermented", Description: "Rice bowl with fermented vegetables"},
	{Name: "Caesar Salad", Category: "dairy", Description: "Romaine lettuce with Caesar dressing"},
}

// SearchFoods filters the demo catalog by name or description.
func (s *AnalysisService) SearchFoods(query string, limit int) []FoodSearchResult {
	if limit <= 0 {
		limit = 10
	}
	queryLower := strings.ToLower(query)
	var matches []FoodSearchResult
	for _, food := range demoFoods {
		if strings.Contains(strings.ToLower(food.Name), queryLower) ||
			strings.Contains(strings.ToLower(food.Description), queryLower) {
			matches = append(matches, food)
			if len(matches) == limit {
				break
			}
		}
	}
	if matches == nil {
		matches = []FoodSearchResult{}
	}
	return matches
}
