package services_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"gutsense/internal/engine"
	"gutsense/internal/models"
	"gutsense/internal/repositories"
	"gutsense/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockClassifier is a mock implementation of services.ImageClassifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) ClassifyFoodImage(ctx context.Context, imageData []byte) (*services.FoodClassification, error) {
	args := m.Called(ctx, imageData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FoodClassification), args.Error(1)
}

// MockPublisher is a mock implementation of services.AnalysisEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAnalysisRecorded(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func newAnalysisService(classifier services.ImageClassifier, publisher services.AnalysisEventPublisher) (*services.AnalysisService, *repositories.MockAnalysisRepository, *repositories.MockProfileRepository) {
	analysisRepo := repositories.NewMockAnalysisRepository()
	profileRepo := repositories.NewMockProfileRepository()
	svc := services.NewAnalysisService(analysisRepo, profileRepo, classifier, publisher)
	return svc, analysisRepo, profileRepo
}

func TestAnalysisService_AnalyzeByName(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishAnalysisRecorded", mock.Anything).Return(nil).Once()
	svc, analysisRepo, _ := newAnalysisService(nil, publisher)

	// No stored profile: the documented defaults apply and fermented food
	// lands on the beneficial rule.
	result, err := svc.Analyze(context.Background(), "user-1", services.AnalyzeRequest{
		FoodName: "kimchi bowl",
	})
	assert.NoError(t, err)
	assert.Equal(t, engine.ReactionSuitable, result.Reaction)
	assert.Equal(t, models.RecognitionRules, result.RecognitionMethod)
	assert.NotEmpty(t, result.ID)

	// The record was persisted for the user.
	stored, err := analysisRepo.GetByID("user-1", result.ID)
	assert.NoError(t, err)
	assert.Equal(t, "kimchi bowl", stored.FoodName)
	assert.Equal(t, engine.ReactionSuitable, stored.Reaction)
	publisher.AssertExpectations(t)
}

func TestAnalysisService_AnalyzeUsesStoredProfile(t *testing.T) {
	svc, _, profileRepo := newAnalysisService(nil, nil)

	profile := &models.GutProfile{UserID: "user-1", GutType: engine.GutTypeBalanced, SpiceTolerance: 2}
	profile.SetSensitivities([]string{engine.SensitivityLactose})
	assert.NoError(t, profileRepo.Upsert(profile))

	result, err := svc.Analyze(context.Background(), "user-1", services.AnalyzeRequest{
		FoodName: "strawberry milkshake",
	})
	assert.NoError(t, err)
	assert.Equal(t, engine.ReactionAvoid, result.Reaction)
	assert.NotEmpty(t, result.Alternatives)
}

func TestAnalysisService_AnalyzeImageFallsBackToHeuristic(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("ClassifyFoodImage", mock.Anything, mock.Anything).
		Return(nil, services.ErrUpstreamUnavailable).Once()
	svc, analysisRepo, _ := newAnalysisService(classifier, nil)

	image := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	result, err := svc.Analyze(context.Background(), "user-1", services.AnalyzeRequest{
		FoodName: "french fries",
		Image:    image,
	})
	assert.NoError(t, err)
	// The fallback result must be flagged so callers can tell it apart from
	// an AI-derived verdict.
	assert.Equal(t, models.RecognitionHeuristic, result.RecognitionMethod)

	stored, err := analysisRepo.GetByID("user-1", result.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.RecognitionHeuristic, stored.RecognitionMethod)
	classifier.AssertExpectations(t)
}

func TestAnalysisService_AnalyzeImageAIPath(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("ClassifyFoodImage", mock.Anything, mock.Anything).
		Return(&services.FoodClassification{
			Name:        "Kimchi Stew",
			Category:    string(engine.CategoryFermented),
			Confidence:  91,
			Reaction:    engine.ReactionExcellent,
			Explanation: "Fermented stew rich in probiotics.",
		}, nil).Once()
	svc, _, _ := newAnalysisService(classifier, nil)

	image := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	result, err := svc.Analyze(context.Background(), "user-1", services.AnalyzeRequest{Image: image})
	assert.NoError(t, err)
	assert.Equal(t, models.RecognitionAI, result.RecognitionMethod)
	assert.Equal(t, "Kimchi Stew", result.FoodName)
	// A suitable engine verdict may be upgraded to excellent by the AI path.
	assert.Equal(t, engine.ReactionExcellent, result.Reaction)
	assert.Equal(t, 91, result.ConfidenceScore)
	classifier.AssertExpectations(t)
}

func TestAnalysisService_AIDoesNotOverrideAvoid(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("ClassifyFoodImage", mock.Anything, mock.Anything).
		Return(&services.FoodClassification{
			Name:     "Cheese Platter",
			Category: string(engine.CategoryDairy),
			Reaction: engine.ReactionExcellent,
		}, nil).Once()
	svc, _, profileRepo := newAnalysisService(classifier, nil)

	profile := &models.GutProfile{UserID: "user-1", GutType: engine.GutTypeBalanced, SpiceTolerance: 2}
	profile.SetSensitivities([]string{engine.SensitivityLactose})
	assert.NoError(t, profileRepo.Upsert(profile))

	image := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	result, err := svc.Analyze(context.Background(), "user-1", services.AnalyzeRequest{Image: image})
	assert.NoError(t, err)
	// The lactose rule wins regardless of the AI's enthusiasm.
	assert.Equal(t, engine.ReactionAvoid, result.Reaction)
	classifier.AssertExpectations(t)
}

func TestAnalysisService_AnalyzeRejectsEmptyRequest(t *testing.T) {
	svc, _, _ := newAnalysisService(nil, nil)

	_, err := svc.Analyze(context.Background(), "user-1", services.AnalyzeRequest{})
	assert.ErrorIs(t, err, engine.ErrInvalidCategory)

	_, err = svc.Analyze(context.Background(), "user-1", services.AnalyzeRequest{Image: "not-base64!!"})
	assert.ErrorIs(t, err, engine.ErrInvalidCategory)
}

func TestAnalysisService_DeleteIsIdempotent(t *testing.T) {
	svc, analysisRepo, _ := newAnalysisService(nil, nil)

	record := &models.FoodAnalysis{UserID: "user-1", FoodName: "toast", Reaction: engine.ReactionSuitable}
	assert.NoError(t, analysisRepo.Create(record))

	assert.NoError(t, svc.DeleteAnalysis("user-1", record.ID))
	// Second delete of the same ID reports not found, never an escalation.
	err := svc.DeleteAnalysis("user-1", record.ID)
	assert.True(t, repositories.IsNotFound(err))
}

func TestAnalysisService_HistoryOrdering(t *testing.T) {
	svc, analysisRepo, _ := newAnalysisService(nil, nil)

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"A", "B", "C"} {
		record := &models.FoodAnalysis{
			UserID:    "user-1",
			FoodName:  name,
			Reaction:  engine.ReactionSuitable,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, analysisRepo.Create(record))
	}

	history, err := svc.GetHistory("user-1", 20, 0)
	assert.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, "C", history[0].FoodName)
	assert.Equal(t, "B", history[1].FoodName)
	assert.Equal(t, "A", history[2].FoodName)
}

func TestAnalysisService_CrossUserIsolation(t *testing.T) {
	svc, analysisRepo, _ := newAnalysisService(nil, nil)

	record := &models.FoodAnalysis{UserID: "user-y", FoodName: "pizza", FoodCategory: "dairy", Reaction: engine.ReactionCaution}
	assert.NoError(t, analysisRepo.Create(record))

	// Another user cannot see, delete, or count the record.
	_, err := svc.GetAnalysis("user-x", record.ID)
	assert.True(t, repositories.IsNotFound(err))

	err = svc.DeleteAnalysis("user-x", record.ID)
	assert.True(t, repositories.IsNotFound(err))

	stats, err := svc.GetStats("user-x")
	assert.NoError(t, err)
	assert.Zero(t, stats.TotalAnalyses)

	// The owner still sees it.
	owned, err := svc.GetAnalysis("user-y", record.ID)
	assert.NoError(t, err)
	assert.Equal(t, "pizza", owned.FoodName)
}

func TestAnalysisService_ClearHistoryAndStats(t *testing.T) {
	svc, analysisRepo, _ := newAnalysisService(nil, nil)

	for _, reaction := range []string{engine.ReactionSuitable, engine.ReactionSuitable, engine.ReactionAvoid} {
		record := &models.FoodAnalysis{UserID: "user-1", FoodName: "x", FoodCategory: "dairy", Reaction: reaction}
		assert.NoError(t, analysisRepo.Create(record))
	}

	stats, err := svc.GetStats("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalAnalyses)
	assert.Equal(t, int64(2), stats.ByReaction[engine.ReactionSuitable])
	assert.Equal(t, int64(1), stats.ByReaction[engine.ReactionAvoid])
	assert.Equal(t, int64(3), stats.ByCategory["dairy"])

	deleted, err := svc.ClearHistory("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	deleted, err = svc.ClearHistory("user-1")
	assert.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestAnalysisService_SearchFoods(t *testing.T) {
	svc, _, _ := newAnalysisService(nil, nil)

	results := svc.SearchFoods("pizza", 10)
	assert.Len(t, results, 1)
	assert.Equal(t, "Margherita Pizza", results[0].Name)

	assert.Empty(t, svc.SearchFoods("durian", 10))
}
