package prompt

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder() *Builder {
	return NewBuilder(DefaultVocabulary(), rand.New(rand.NewSource(1)))
}

func TestBuild_NoPreferences(t *testing.T) {
	b := newTestBuilder()

	result := b.Build(Request{Type: TypeRandom}, nil, nil)

	assert.True(t, strings.HasPrefix(result.Prompt, "Generate an Instant Pot recipe with the following requirements:\n\n"))
	assert.NotContains(t, result.Prompt, "User Preferences:")
	assert.Contains(t, result.Prompt, "Return the recipe in JSON format")
	assert.Empty(t, result.Overrides)
}

func TestBuild_RandomIncludesCreativeBlock(t *testing.T) {
	b := newTestBuilder()

	result := b.Build(Request{Type: TypeRandom}, nil, nil)

	assert.Contains(t, result.Prompt, "For variety, consider:")
	assert.Contains(t, result.Prompt, "- Proteins like:")
	assert.Contains(t, result.Prompt, "Be creative and avoid common dishes")
}

func TestBuild_NonRandomOmitsCreativeBlock(t *testing.T) {
	b := newTestBuilder()

	result := b.Build(Request{Type: TypeTimeline, TimeLimit: 30}, nil, nil)

	assert.NotContains(t, result.Prompt, "For variety, consider:")
	assert.Contains(t, result.Prompt, "- Total time (prep + cook) must be under 30 minutes")
}

func TestBuild_TypeConstraints(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"protein", Request{Type: TypeProtein, Protein: "Shrimp"}, "- Must use Shrimp as the main protein"},
		{"cuisine", Request{Type: TypeCuisine, Cuisine: "Thai"}, "- Must be Thai cuisine"},
		{"pantry", Request{Type: TypePantry, PantryItems: []string{"rice", "black beans"}}, "- Must use these ingredients: rice, black beans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := b.Build(tt.req, nil, nil)
			assert.Contains(t, result.Prompt, tt.want)
		})
	}
}

func TestBuild_VarietyBlock(t *testing.T) {
	b := newTestBuilder()
	recent := []RecentRecipe{
		{Title: "Spicy Chicken Curry", Cuisine: "Indian", Ingredients: []string{"1 lb chicken thighs", "curry paste"}},
		{Title: "Beef Stroganoff", Cuisine: "Russian", Ingredients: []string{"ground beef", "sour cream"}},
		{Title: "Lemon Risotto", Cuisine: "Italian", Ingredients: []string{"arborio rice"}},
	}

	result := b.Build(Request{Type: TypeRandom}, nil, recent)

	assert.Contains(t, result.Prompt, "IMPORTANT - For variety, avoid these recent recipes:")
	assert.Contains(t, result.Prompt, "- Recent dishes: spicy chicken curry, beef stroganoff, lemon risotto")
	assert.Contains(t, result.Prompt, "- Recently used proteins: chicken, beef")
	assert.Contains(t, result.Prompt, "- Recent cuisines: Indian, Russian, Italian")
	assert.Contains(t, result.Prompt, "Please generate something DIFFERENT and CREATIVE.")
}

func TestBuild_VarietyBlockCapsAtFiveTitles(t *testing.T) {
	b := newTestBuilder()
	recent := make([]RecentRecipe, 8)
	for i := range recent {
		recent[i] = RecentRecipe{Title: "Recipe " + string(rune('A'+i)), Cuisine: "Mexican"}
	}

	result := b.Build(Request{Type: TypeRandom}, nil, recent)

	assert.Contains(t, result.Prompt, "- Recent dishes: recipe a, recipe b, recipe c, recipe d, recipe e\n")
	assert.NotContains(t, result.Prompt, "recipe f")
	// Duplicate cuisines collapse to one entry.
	assert.Contains(t, result.Prompt, "- Recent cuisines: Mexican\n")
}

func TestBuild_EmptyHistoryOmitsVarietyBlock(t *testing.T) {
	b := newTestBuilder()

	result := b.Build(Request{Type: TypeRandom}, nil, []RecentRecipe{})

	assert.NotContains(t, result.Prompt, "avoid these recent recipes")
}

func TestBuild_VeganPreference(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{IsVegan: true}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.Contains(t, result.Prompt, "- Must be vegan (no animal products)")
	assert.Empty(t, result.Overrides)
}

func TestBuild_VegetarianPreference(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{IsVegetarian: true}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.Contains(t, result.Prompt, "- Must be vegetarian (no meat, but dairy/eggs ok)")
	assert.Empty(t, result.Overrides)
}

func TestBuild_ExplicitMeatOverridesVegan(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{IsVegan: true}

	result := b.Build(Request{Type: TypeProtein, Protein: "Chicken"}, prefs, nil)

	assert.NotContains(t, result.Prompt, "- Must be vegan")
	assert.Contains(t, result.Prompt, "- NOTE: User explicitly requested Chicken which overrides their usual vegan preference for this recipe")
	assert.Equal(t, []string{OverrideVegan}, result.Overrides)
}

func TestBuild_ExplicitMeatOverridesVegetarian(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{IsVegetarian: true}

	result := b.Build(Request{Type: TypeProtein, Protein: "Beef"}, prefs, nil)

	assert.NotContains(t, result.Prompt, "- Must be vegetarian")
	assert.Contains(t, result.Prompt, "overrides their usual vegetarian preference")
	assert.Equal(t, []string{OverrideVegetarian}, result.Overrides)
}

func TestBuild_NonMeatProteinKeepsVeganConstraint(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{IsVegan: true}

	result := b.Build(Request{Type: TypeProtein, Protein: "Tofu"}, prefs, nil)

	assert.Contains(t, result.Prompt, "- Must be vegan (no animal products)")
	assert.Empty(t, result.Overrides)
}

func TestBuild_AllergiesSurviveProteinOverride(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{
		IsVegan:   true,
		Allergies: []string{"peanuts", "shellfish"},
	}

	result := b.Build(Request{Type: TypeProtein, Protein: "Chicken"}, prefs, nil)

	assert.Contains(t, result.Prompt, "- ALLERGIES (STRICT) - Must NOT contain: peanuts, shellfish")
}

func TestBuild_DietaryRestrictions(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{DietaryRestrictions: []string{"gluten-free", "low-sodium"}}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.Contains(t, result.Prompt, "- Dietary restrictions: gluten-free, low-sodium")
}

func TestBuild_CookTimeWindowOnNonTimeline(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{MinCookTime: 20, MaxCookTime: 40}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.Contains(t, result.Prompt, "- Total time (prep + cook) should be between 20 and 40 minutes")
	assert.Empty(t, result.Overrides)
}

func TestBuild_TimelineWithinWindowNoOverride(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{MinCookTime: 20, MaxCookTime: 40}

	result := b.Build(Request{Type: TypeTimeline, TimeLimit: 30}, prefs, nil)

	assert.NotContains(t, result.Prompt, "should be between")
	assert.Contains(t, result.Prompt, "must be under 30 minutes")
	assert.Empty(t, result.Overrides)
}

func TestBuild_TimelineOutsideWindowRecordsOverride(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{MinCookTime: 20, MaxCookTime: 40}

	result := b.Build(Request{Type: TypeTimeline, TimeLimit: 10}, prefs, nil)

	assert.Equal(t, []string{OverrideTime}, result.Overrides)
}

func TestBuild_NoWindowWhenUnset(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{MaxCookTime: 40}

	result := b.Build(Request{Type: TypeTimeline, TimeLimit: 120}, prefs, nil)

	assert.Empty(t, result.Overrides)
}

func TestBuild_Dislikes(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{DislikedIngredients: []string{"olives", "cilantro"}}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.Contains(t, result.Prompt, "- DISLIKES (STRICT) - Must NOT contain: olives, cilantro")
}

func TestBuild_RequestedProteinFilteredFromDislikes(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{DislikedIngredients: []string{"chicken", "olives"}}

	result := b.Build(Request{Type: TypeProtein, Protein: "Chicken"}, prefs, nil)

	assert.Contains(t, result.Prompt, "- DISLIKES (STRICT) - Must NOT contain: olives\n")
	assert.NotContains(t, result.Prompt, "Must NOT contain: chicken")
}

func TestBuild_DislikesLineOmittedWhenAllFiltered(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{DislikedIngredients: []string{"chicken thighs"}}

	result := b.Build(Request{Type: TypeProtein, Protein: "Chicken"}, prefs, nil)

	assert.NotContains(t, result.Prompt, "DISLIKES (STRICT)")
}

func TestBuild_LikedIngredientsAreSuggestions(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{LikedIngredients: []string{"garlic", "lime"}}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.Contains(t, result.Prompt, "- Consider including these liked ingredients (suggestions only): garlic, lime")
}

func TestBuild_PreferredProteinVeganFilter(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{
		IsVegan:           true,
		PreferredProteins: []string{"Chicken", "Tofu"},
	}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	// Chicken is not a vegan protein, so Tofu is the only candidate.
	assert.Contains(t, result.Prompt, "- MUST use Tofu as the main protein (this is a strict requirement)")
}

func TestBuild_PreferredProteinVegetarianFilter(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{
		IsVegetarian:      true,
		PreferredProteins: []string{"Beef", "Shrimp", "Beans"},
	}

	result := b.Build(Request{Type: TypeTimeline, TimeLimit: 30}, prefs, nil)

	assert.Contains(t, result.Prompt, "- MUST use Beans as the main protein")
}

func TestBuild_PreferredProteinAllFilteredOut(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{
		IsVegan:           true,
		PreferredProteins: []string{"Chicken", "Beef"},
	}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.NotContains(t, result.Prompt, "as the main protein (this is a strict requirement)")
}

func TestBuild_PreferredCuisineOnRandom(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{PreferredCuisines: []string{"Korean"}}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	assert.Contains(t, result.Prompt, "- MUST make it Korean cuisine (this is a strict requirement)")
}

func TestBuild_CuisineMismatchNoteWithoutOverride(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{PreferredCuisines: []string{"Italian", "Mexican"}}

	result := b.Build(Request{Type: TypeCuisine, Cuisine: "Thai"}, prefs, nil)

	assert.Contains(t, result.Prompt, "- NOTE: User explicitly requested Thai cuisine which is not in their usual preferences")
	assert.Empty(t, result.Overrides)
}

func TestBuild_MatchingCuisineNoNote(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{PreferredCuisines: []string{"Thai"}}

	result := b.Build(Request{Type: TypeCuisine, Cuisine: "Thai"}, prefs, nil)

	assert.NotContains(t, result.Prompt, "not in their usual preferences")
}

func TestBuild_OutputFormatAlwaysLast(t *testing.T) {
	b := newTestBuilder()
	prefs := &Preferences{IsVegan: true, Allergies: []string{"nuts"}}

	result := b.Build(Request{Type: TypeRandom}, prefs, nil)

	require.True(t, strings.HasSuffix(result.Prompt, `"tips": "Optional cooking tips"
}`))
	assert.Contains(t, result.Prompt, `"prepTime": 15`)
	assert.Contains(t, result.Prompt, `{"amount": "2 cups", "item": "rice"}`)
}

func TestFilterDislikes_Bidirectional(t *testing.T) {
	kept := filterDislikes([]string{"chicken", "chicken thighs", "olives"}, "Chicken Thighs")

	assert.Equal(t, []string{"olives"}, kept)
}
