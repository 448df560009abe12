package engine

import "strings"

// Keyword lists per category for the local fallback classifier. This is the
// demo/heuristic mode used when the AI classifier is unavailable or when the
// caller supplies only a food name.
var categoryKeywords = map[Category][]string{
	CategoryFried: {
		"fried chicken", "french fries", "fried rice", "fried noodles",
		"donut", "chips", "tempura", "fritter",
	},
	CategorySpicy: {
		"curry", "chili", "hot sauce", "jalapeño", "jalapeno", "pepper",
		"buffalo wings", "wasabi", "sriracha", "cayenne", "tabasco",
	},
	CategoryDairy: {
		"milk", "cheese", "yogurt", "butter", "cream", "ice cream",
		"milkshake", "lasagna", "pizza", "cheesecake",
	},
	CategoryAcidic: {
		"tomato", "citrus", "orange", "lemon", "lime", "grapefruit",
		"vinegar", "wine", "coffee", "marinara", "salsa", "pickle",
	},
	CategoryHighFiber: {
		"beans", "lentils", "chickpea", "broccoli", "cabbage",
		"brussels sprouts", "cauliflower", "whole grain", "quinoa",
		"brown rice", "oats", "bran",
	},
	CategoryFermented: {
		"kimchi", "sauerkraut", "kefir", "kombucha", "miso", "tempeh",
	},
	CategoryGentle: {
		"rice", "banana", "toast", "chicken breast", "fish", "sweet potato",
		"oatmeal", "applesauce", "crackers", "plain pasta",
		"steamed vegetables", "herbal tea",
	},
	CategoryProcessed: {
		"burger", "hot dog", "soda", "bacon", "sausage", "processed meat",
		"cake", "candy", "instant noodles",
	},
}

// Stable iteration order so results don't depend on map ordering.
var categorizeOrder = []Category{
	CategoryFried, CategorySpicy, CategoryDairy, CategoryAcidic,
	CategoryHighFiber, CategoryFermented, CategoryGentle, CategoryProcessed,
}

// CategorizeFood infers food categories from a name by keyword matching.
// The result may span multiple categories (a pizza is both dairy and
// processed); an unrecognized name yields {gentle} so downstream
// classification still has a non-empty input.
func CategorizeFood(name string) []Category {
	lower := strings.ToLower(name)
	var categories []Category
	for _, cat := range categorizeOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				categories = append(categories, cat)
				break
			}
		}
	}
	if len(categories) == 0 {
		categories = append(categories, CategoryGentle)
	}
	return categories
}
