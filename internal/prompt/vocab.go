package prompt

// Vocabulary holds the fixed ingredient and cuisine word lists the builder
// works from. Injected rather than hardcoded so tests can vary them.
type Vocabulary struct {
	// HistoryProteins are matched as substrings against recent-recipe
	// ingredients to compute the recently-used protein set.
	HistoryProteins []string
	// ExplicitMeats are proteins that, when requested directly, waive a
	// vegan/vegetarian preference for that request.
	ExplicitMeats []string
	// VeganProteins are the only preferred proteins valid for vegan users.
	VeganProteins []string
	// CreativeProteins, CreativeCuisines and CreativeDishes seed random
	// generation as inspiration only.
	CreativeProteins []string
	CreativeCuisines []string
	CreativeDishes   []string
}

// DefaultVocabulary returns the stock word lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		HistoryProteins: []string{"chicken", "beef", "pork", "fish", "shrimp", "tofu", "lamb", "turkey"},
		ExplicitMeats:   []string{"Chicken", "Beef", "Pork", "Fish", "Turkey", "Shrimp", "Sausage"},
		VeganProteins:   []string{"Tofu", "Beans", "Lentils"},
		CreativeProteins: []string{
			"turkey", "ground turkey", "salmon", "cod", "shrimp",
			"pork shoulder", "pork loin", "lamb", "italian sausage", "vegetarian",
		},
		CreativeCuisines: []string{
			"Mexican", "Italian", "Asian Fusion", "Mediterranean", "Indian-inspired",
			"Southern", "Thai-inspired", "Greek", "Cajun",
		},
		CreativeDishes: []string{
			"chili", "curry", "risotto", "jambalaya", "soup", "pasta",
			"rice bowls", "tacos", "casserole", "stir-fry style",
		},
	}
}
