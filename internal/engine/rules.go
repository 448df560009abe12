package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCategory is returned when a supplied category is outside the
	// fixed vocabulary, or when the category set is empty.
	ErrInvalidCategory = errors.New("invalid food category")
	// ErrInvalidProfile is returned when the profile's gut type or spice
	// tolerance is outside its enumerated range.
	ErrInvalidProfile = errors.New("invalid gut profile")
)

// Profile is the engine's view of a user's gut profile. Callers are expected
// to validate fields against the registry before persisting; Classify still
// rejects out-of-range values rather than guessing.
type Profile struct {
	GutType        string
	Sensitivities  []string
	SpiceTolerance int
}

// DefaultProfile returns the documented defaults used when a user has no
// stored profile: balanced gut, medium spice tolerance, no sensitivities.
func DefaultProfile() Profile {
	return Profile{
		GutType:        GutTypeBalanced,
		Sensitivities:  []string{},
		SpiceTolerance: SpiceToleranceDefault,
	}
}

// Result is the engine's verdict for one food against one profile.
type Result struct {
	Reaction        string `json:"reaction"`
	Explanation     string `json:"explanation"`
	ConfidenceScore int    `json:"confidence_score"`
}

// input is the precomputed matching context handed to rule predicates.
type input struct {
	categories    map[Category]bool
	sensitivities map[string]bool
	profile       Profile
}

func (in input) has(c Category) bool     { return in.categories[c] }
func (in input) sensitive(s string) bool { return in.sensitivities[s] }

// rule is one entry of the priority list: a predicate plus a fixed outcome.
type rule struct {
	name       string
	matches    func(in input) bool
	reaction   string
	explain    string
	confidence int
}

// The ordered rule list. Evaluation is first-match-wins, so ordering here is
// load-bearing: the lactose rule deliberately outranks the gut-type and spice
// rules, and the beneficial-category rule outranks the acidity caution.
var rules = []rule{
	{
		name: "lactose_dairy",
		matches: func(in input) bool {
			return in.sensitive(SensitivityLactose) && in.has(CategoryDairy)
		},
		reaction:   ReactionAvoid,
		explain:    "Contains dairy, which may cause discomfort due to your lactose intolerance. This could lead to bloating, gas, and digestive upset.",
		confidence: 92,
	},
	{
		name: "inflammation_fried",
		matches: func(in input) bool {
			return in.profile.GutType == GutTypeHighInflammation && in.has(CategoryFried)
		},
		reaction:   ReactionAvoid,
		explain:    "Fried food may increase inflammation in your gut. With your high inflammation profile, it's best to choose anti-inflammatory alternatives.",
		confidence: 88,
	},
	{
		name: "low_spice_tolerance",
		matches: func(in input) bool {
			return in.profile.SpiceTolerance == SpiceToleranceMin && in.has(CategorySpicy)
		},
		reaction:   ReactionAvoid,
		explain:    "This is spicy and may cause digestive discomfort given your low spice tolerance. It could lead to stomach irritation.",
		confidence: 90,
	},
	{
		name: "beneficial",
		matches: func(in input) bool {
			return in.has(CategoryFermented) || in.has(CategoryHighFiber)
		},
		reaction:   ReactionSuitable,
		explain:    "Fermented and high-fiber foods generally support gut health and microbiome diversity. This should be a beneficial choice.",
		confidence: 85,
	},
	{
		name: "acidity_acidic",
		matches: func(in input) bool {
			return in.sensitive(SensitivityAcidity) && in.has(CategoryAcidic)
		},
		reaction:   ReactionCaution,
		explain:    "This is acidic and might trigger acid reflux based on your profile. Consider smaller portions or pairing it with alkaline foods.",
		confidence: 75,
	},
	{
		name: "processed_default",
		matches: func(in input) bool {
			return in.has(CategoryProcessed)
		},
		reaction:   ReactionCaution,
		explain:    "Processed food might cause some digestive stress. Consider having it occasionally rather than regularly.",
		confidence: 70,
	},
	{
		name:       "default_suitable",
		matches:    func(in input) bool { return true },
		reaction:   ReactionSuitable,
		explain:    "No major concerns identified for your gut profile. This should be well-tolerated as part of a balanced diet.",
		confidence: 75,
	},
}

// Classify evaluates the ordered rule list against the given categories and
// profile and returns the first matching rule's outcome. It is a pure
// function: identical inputs always yield identical results.
func Classify(categories []Category, profile Profile) (Result, error) {
	if len(categories) == 0 {
		return Result{}, fmt.Errorf("%w: empty category set", ErrInvalidCategory)
	}
	catSet := make(map[Category]bool, len(categories))
	for _, c := range categories {
		if !IsValidCategory(c) {
			return Result{}, fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
		catSet[c] = true
	}

	if !IsValidGutType(profile.GutType) {
		return Result{}, fmt.Errorf("%w: unknown gut type %q", ErrInvalidProfile, profile.GutType)
	}
	if !IsValidSpiceTolerance(profile.SpiceTolerance) {
		return Result{}, fmt.Errorf("%w: spice tolerance %d out of range", ErrInvalidProfile, profile.SpiceTolerance)
	}

	in := input{
		categories:    catSet,
		sensitivities: make(map[string]bool, len(profile.Sensitivities)),
		profile:       profile,
	}
	for _, s := range profile.Sensitivities {
		in.sensitivities[s] = true
	}

	for _, r := range rules {
		if r.matches(in) {
			return Result{
				Reaction:        r.reaction,
				Explanation:     r.explain,
				ConfidenceScore: r.confidence,
			}, nil
		}
	}

	// Unreachable: the last rule always matches.
	return Result{}, fmt.Errorf("%w: no rule matched", ErrInvalidCategory)
}
