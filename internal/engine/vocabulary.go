package engine

// Gut types describe a user's digestive baseline.
const (
	GutTypeBalanced         = "balanced"
	GutTypeHighInflammation = "high_inflammation"
	GutTypeLowDiversity     = "low_diversity"
)

// Sensitivity tags users can declare on their profile.
const (
	SensitivityLactose   = "lactose"
	SensitivityIBS       = "ibs"
	SensitivityAcidity   = "acidity"
	SensitivityUlcer     = "ulcer"
	SensitivitySensitive = "sensitive"
)

// Category describes a digestion-relevant property of a food.
type Category string

const (
	CategoryFried     Category = "fried"
	CategorySpicy     Category = "spicy"
	CategoryDairy     Category = "dairy"
	CategoryAcidic    Category = "acidic"
	CategoryHighFiber Category = "high_fiber"
	CategoryFermented Category = "fermented"
	CategoryGentle    Category = "gentle"
	CategoryProcessed Category = "processed"
)

// Reactions the engine can emit. The AI path may additionally report
// "excellent"; the local rules never do.
const (
	ReactionSuitable  = "suitable"
	ReactionCaution   = "caution"
	ReactionAvoid     = "avoid"
	ReactionExcellent = "excellent"
)

// Spice tolerance is an ordinal: 1 low, 2 medium, 3 high.
const (
	SpiceToleranceMin     = 1
	SpiceToleranceDefault = 2
	SpiceToleranceMax     = 3
)

var validGutTypes = map[string]bool{
	GutTypeBalanced:         true,
	GutTypeHighInflammation: true,
	GutTypeLowDiversity:     true,
}

var validSensitivities = map[string]bool{
	SensitivityLactose:   true,
	SensitivityIBS:       true,
	SensitivityAcidity:   true,
	SensitivityUlcer:     true,
	SensitivitySensitive: true,
}

var validCategories = map[Category]bool{
	CategoryFried:     true,
	CategorySpicy:     true,
	CategoryDairy:     true,
	CategoryAcidic:    true,
	CategoryHighFiber: true,
	CategoryFermented: true,
	CategoryGentle:    true,
	CategoryProcessed: true,
}

var validReactions = map[string]bool{
	ReactionSuitable:  true,
	ReactionCaution:   true,
	ReactionAvoid:     true,
	ReactionExcellent: true,
}

// IsValidGutType reports whether s is a known gut type.
func IsValidGutType(s string) bool { return validGutTypes[s] }

// IsValidSensitivity reports whether s is a known sensitivity tag.
func IsValidSensitivity(s string) bool { return validSensitivities[s] }

// IsValidCategory reports whether c is part of the fixed category vocabulary.
func IsValidCategory(c Category) bool { return validCategories[c] }

// IsValidReaction reports whether s is a known reaction, including the
// AI-only "excellent".
func IsValidReaction(s string) bool { return validReactions[s] }

// IsValidSpiceTolerance reports whether n is within the ordinal range.
func IsValidSpiceTolerance(n int) bool {
	return n >= SpiceToleranceMin && n <= SpiceToleranceMax
}

// Listing is a described enumeration entry served by the registry endpoints.
type Listing struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// GutTypeListings returns the selectable gut types with descriptions.
func GutTypeListings() []Listing {
	return []Listing{
		{Value: GutTypeBalanced, Label: "Balanced Gut", Description: "Generally healthy digestion with occasional minor issues"},
		{Value: GutTypeHighInflammation, Label: "High Inflammation", Description: "Prone to inflammatory responses, sensitive to certain foods"},
		{Value: GutTypeLowDiversity, Label: "Low Diversity", Description: "Limited gut bacteria diversity, may need gradual dietary changes"},
	}
}

// SensitivityListings returns the selectable sensitivity tags with descriptions.
func SensitivityListings() []Listing {
	return []Listing{
		{Value: SensitivityAcidity, Label: "Acidity / Acid Reflux", Description: "Sensitive to acidic foods and drinks"},
		{Value: SensitivityIBS, Label: "IBS (Irritable Bowel Syndrome)", Description: "Digestive disorder affecting the large intestine"},
		{Value: SensitivityUlcer, Label: "Ulcer Sensitivity", Description: "Stomach ulcer concerns and related sensitivities"},
		{Value: SensitivityLactose, Label: "Lactose Intolerance", Description: "Difficulty digesting dairy products"},
		{Value: SensitivitySensitive, Label: "Sensitive Digestion", Description: "General digestive sensitivity, bloating, and discomfort"},
	}
}
