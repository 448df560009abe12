package engine

import "strings"

// Tip is a short suggestion shown alongside an analysis result.
type Tip struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

var alternativesByKeyword = []struct {
	keyword string
	foods   []string
}{
	{"pizza", []string{"whole grain flatbread with vegetables", "cauliflower crust pizza"}},
	{"burger", []string{"grilled chicken sandwich", "turkey burger"}},
	{"ice cream", []string{"frozen yogurt", "coconut milk ice cream"}},
	{"curry", []string{"mild coconut curry", "turmeric rice"}},
	{"pasta", []string{"zucchini noodles", "quinoa pasta"}},
	{"fried", []string{"grilled version of the same dish", "baked version of the same dish"}},
	{"spicy", []string{"mild seasoned alternative", "herb-crusted alternative"}},
}

var fallbackAlternatives = []string{
	"grilled chicken with rice", "steamed vegetables", "banana and oatmeal",
}

// Alternatives suggests up to three replacement foods for a name that drew a
// caution or avoid verdict. Suitable verdicts get no alternatives.
func Alternatives(foodName, reaction string) []string {
	if reaction == ReactionSuitable || reaction == ReactionExcellent {
		return []string{}
	}

	lower := strings.ToLower(foodName)
	var alts []string
	for _, entry := range alternativesByKeyword {
		if strings.Contains(lower, entry.keyword) {
			alts = append(alts, entry.foods...)
			break
		}
	}
	if len(alts) == 0 {
		alts = append(alts, fallbackAlternatives...)
	}
	if len(alts) > 3 {
		alts = alts[:3]
	}
	return alts
}

// Tips returns up to two suggestions matching the verdict and categories.
func Tips(reaction string, categories []Category) []Tip {
	var tips []Tip

	switch reaction {
	case ReactionSuitable, ReactionExcellent:
		tips = append(tips,
			Tip{Icon: "✅", Title: "Great choice!", Text: "This food aligns well with your gut profile. Enjoy it as part of a balanced diet."},
			Tip{Icon: "⏰", Title: "Timing tip", Text: "Best enjoyed when you're relaxed and can eat slowly for optimal digestion."},
		)
	case ReactionCaution:
		tips = append(tips,
			Tip{Icon: "🥛", Title: "Pairing tip", Text: "Consider having this with probiotic yogurt or a glass of water to aid digestion."},
			Tip{Icon: "🍽️", Title: "Portion tip", Text: "Try a smaller portion first to see how your body responds."},
		)
	case ReactionAvoid:
		tips = append(tips,
			Tip{Icon: "🔄", Title: "Alternative tip", Text: "Try the suggested alternatives, which are more suitable for your gut profile."},
			Tip{Icon: "💡", Title: "Future tip", Text: "Your gut health can improve over time with the right dietary choices."},
		)
	}

	for _, c := range categories {
		if c == CategorySpicy {
			tips = append(tips, Tip{Icon: "🌶️", Title: "Spice tip", Text: "If you do eat spicy food, have some milk or yogurt nearby to cool your palate."})
		}
		if c == CategoryDairy {
			tips = append(tips, Tip{Icon: "🥥", Title: "Dairy alternative", Text: "Consider plant-based alternatives like almond, oat, or coconut milk products."})
		}
	}

	if len(tips) > 2 {
		tips = tips[:2]
	}
	return tips
}
