package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gutsense/internal/engine"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrUpstreamUnavailable is returned when the external AI classifier fails or
// times out. Callers recover by falling back to the local heuristic.
var ErrUpstreamUnavailable = errors.New("AI classifier unavailable")

// FoodClassification is the strictly typed result of one AI image
// classification. Fields the model omits stay at their zero value; fields it
// returns with out-of-vocabulary values are cleared during validation rather
// than passed through.
type FoodClassification struct {
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	Confidence      int                `json:"confidence"`
	SpiceLevel      int                `json:"spiceLevel"`
	GutImpact       string             `json:"gutImpact"`
	Fermented       bool               `json:"fermented"`
	Reaction        string             `json:"reaction"`
	Explanation     string             `json:"explanation"`
	Alternatives    []string           `json:"alternatives"`
	Tips            []string           `json:"tips"`
	NutritionalInfo map[string]float64 `json:"nutritionalInfo"`
}

// Categories derives the engine's category set from the classification.
func (c *FoodClassification) Categories() []engine.Category {
	var cats []engine.Category
	if cat := engine.Category(c.Category); engine.IsValidCategory(cat) {
		cats = append(cats, cat)
	}
	if c.Fermented {
		cats = appendUnique(cats, engine.CategoryFermented)
	}
	if c.SpiceLevel >= 2 {
		cats = appendUnique(cats, engine.CategorySpicy)
	}
	if len(cats) == 0 {
		cats = engine.CategorizeFood(c.Name)
	}
	return cats
}

func appendUnique(cats []engine.Category, c engine.Category) []engine.Category {
	for _, existing := range cats {
		if existing == c {
			return cats
		}
	}
	return append(cats, c)
}

// ImageClassifier is the outbound interface to the generative AI service.
type ImageClassifier interface {
	ClassifyFoodImage(ctx context.Context, imageData []byte) (*FoodClassification, error)
}

// AIService classifies food images through the Gemini API.
type AIService struct {
	client *genai.Client
	model  string
}

// NewAIService creates a new AIService backed by the Gemini API.
func NewAIService(ctx context.Context, apiKey string) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{
		client: client,
		model:  "gemini-1.5-flash",
	}, nil
}

// Close releases the underlying API client.
func (s *AIService) Close() error {
	return s.client.Close()
}

const classifyPrompt = `You are a gut-health nutrition expert. Identify the food in the image and classify it for digestive compatibility.

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a single valid JSON object
- Do not include any markdown formatting or explanatory text around the JSON
- The JSON must have these exact fields:
  {
    "name": "food name",
    "category": "one of: fried, spicy, dairy, acidic, high_fiber, fermented, gentle, processed",
    "confidence": 0-100,
    "spiceLevel": 0-3,
    "gutImpact": "short description of likely gut impact",
    "fermented": true or false,
    "reaction": "one of: excellent, suitable, caution, avoid",
    "explanation": "one or two sentences",
    "alternatives": ["up to three alternative foods"],
    "tips": ["up to two short tips"],
    "nutritionalInfo": {"calories": 0, "protein": 0, "carbs": 0, "fat": 0}
  }`

// ClassifyFoodImage sends the image to Gemini and decodes the reply into a
// typed classification. Every failure mode maps to ErrUpstreamUnavailable so
// the caller can fall back without inspecting the cause.
func (s *AIService) ClassifyFoodImage(ctx context.Context, imageData []byte) (*FoodClassification, error) {
	model := s.client.GenerativeModel(s.model)

	img := genai.ImageData("image/jpeg", imageData)
	resp, err := model.GenerateContent(ctx, img, genai.Text(classifyPrompt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUpstreamUnavailable)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected response part", ErrUpstreamUnavailable)
	}

	jsonStr := extractJSON(string(text))
	if jsonStr == "" {
		return nil, fmt.Errorf("%w: no valid JSON found in response", ErrUpstreamUnavailable)
	}

	var result FoodClassification
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrUpstreamUnavailable, err)
	}

	sanitizeClassification(&result)
	return &result, nil
}

// sanitizeClassification coerces the model's free-form output into the fixed
// vocabularies, clearing anything unrecognized.
func sanitizeClassification(c *FoodClassification) {
	if !engine.IsValidCategory(engine.Category(c.Category)) {
		c.Category = ""
	}
	if !engine.IsValidReaction(c.Reaction) {
		c.Reaction = ""
	}
	if c.Confidence < 0 {
		c.Confidence = 0
	}
	if c.Confidence > 100 {
		c.Confidence = 100
	}
	if c.SpiceLevel < 0 {
		c.SpiceLevel = 0
	}
	if c.SpiceLevel > 3 {
		c.SpiceLevel = 3
	}
	if len(c.Alternatives) > 3 {
		c.Alternatives = c.Alternatives[:3]
	}
	if len(c.Tips) > 2 {
		c.Tips = c.Tips[:2]
	}
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
