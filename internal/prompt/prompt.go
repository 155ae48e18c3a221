// Package prompt builds recipe-generation prompts from request parameters,
// a user's preference record and their recent generation history. It has no
// dependencies on the persistence or transport layers.
package prompt

import (
	"fmt"
	"math/rand"
	"strings"
)

// GenerationType selects the generation mode.
type GenerationType string

const (
	TypeRandom   GenerationType = "random"
	TypeTimeline GenerationType = "timeline"
	TypeProtein  GenerationType = "protein"
	TypeCuisine  GenerationType = "cuisine"
	TypePantry   GenerationType = "pantry"
)

// Override labels reported back to the caller when an explicit request wins
// over a stored preference.
const (
	OverrideVegan      = "Vegan preference"
	OverrideVegetarian = "Vegetarian preference"
	OverrideTime       = "Time preference"
)

// Request carries the generation parameters for a single prompt.
type Request struct {
	Type        GenerationType
	TimeLimit   int
	Protein     string
	Cuisine     string
	PantryItems []string
}

// Preferences is the subset of the stored preference record the builder
// consumes. A nil Preferences means the user opted out.
type Preferences struct {
	MinCookTime         int
	MaxCookTime         int
	IsVegan             bool
	IsVegetarian        bool
	Allergies           []string
	DietaryRestrictions []string
	DislikedIngredients []string
	LikedIngredients    []string
	PreferredProteins   []string
	PreferredCuisines   []string
}

// RecentRecipe summarizes one entry of the user's generation history.
type RecentRecipe struct {
	Title       string
	Cuisine     string
	Ingredients []string
}

// Result is the assembled prompt plus the preferences that were overridden
// by explicit request parameters.
type Result struct {
	Prompt    string
	Overrides []string
}

// Builder assembles generation prompts from an injected vocabulary.
type Builder struct {
	vocab Vocabulary
	rng   *rand.Rand
}

// NewBuilder creates a prompt builder. A nil rng falls back to the global
// math/rand source; tests pass a seeded source for determinism.
func NewBuilder(vocab Vocabulary, rng *rand.Rand) *Builder {
	return &Builder{vocab: vocab, rng: rng}
}

func (b *Builder) intn(n int) int {
	if b.rng != nil {
		return b.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Build assembles the generation prompt. Constraint lines are appended in a
// fixed order; a condition that does not hold simply omits its line.
func (b *Builder) Build(req Request, prefs *Preferences, recent []RecentRecipe) Result {
	var sb strings.Builder
	var overrides []string

	sb.WriteString("Generate an Instant Pot recipe with the following requirements:\n\n")

	b.writeVarietyBlock(&sb, recent)
	b.writeTypeConstraints(&sb, req)

	if req.Type == TypeRandom {
		sb.WriteString("\nFor variety, consider:\n")
		fmt.Fprintf(&sb, "- Proteins like: %s\n", strings.Join(b.vocab.CreativeProteins, ", "))
		fmt.Fprintf(&sb, "- Cuisines like: %s\n", strings.Join(b.vocab.CreativeCuisines, ", "))
		fmt.Fprintf(&sb, "- Dish types like: %s\n", strings.Join(b.vocab.CreativeDishes, ", "))
		sb.WriteString("Be creative and avoid common dishes like basic chicken and rice or beef stew.\n")
	}

	sb.WriteString("\nIMPORTANT: Use ingredients commonly available in typical US grocery stores (Safeway, Kroger, Whole Foods, etc). Avoid rare or specialty ingredients that would be hard to find in western US supermarkets.\n")

	if prefs != nil {
		overrides = b.writePreferenceBlock(&sb, req, prefs)
	}

	sb.WriteString(outputFormat)

	return Result{Prompt: sb.String(), Overrides: overrides}
}

func (b *Builder) writeVarietyBlock(sb *strings.Builder, recent []RecentRecipe) {
	if len(recent) == 0 {
		return
	}

	titles := make([]string, 0, len(recent))
	cuisines := make([]string, 0, len(recent))
	for _, r := range recent {
		titles = append(titles, strings.ToLower(r.Title))
		if r.Cuisine != "" {
			cuisines = append(cuisines, r.Cuisine)
		}
	}

	sb.WriteString("IMPORTANT - For variety, avoid these recent recipes:\n")
	fmt.Fprintf(sb, "- Recent dishes: %s\n", strings.Join(firstN(titles, 5), ", "))

	if proteins := b.recentProteins(recent); len(proteins) > 0 {
		fmt.Fprintf(sb, "- Recently used proteins: %s\n", strings.Join(proteins, ", "))
	}
	if len(cuisines) > 0 {
		fmt.Fprintf(sb, "- Recent cuisines: %s\n", strings.Join(distinct(firstN(cuisines, 5)), ", "))
	}
	sb.WriteString("Please generate something DIFFERENT and CREATIVE.\n\n")
}

// recentProteins scans recent ingredient lists for known protein words,
// preserving first-seen order.
func (b *Builder) recentProteins(recent []RecentRecipe) []string {
	seen := make(map[string]bool)
	var proteins []string
	for _, r := range recent {
		for _, ing := range r.Ingredients {
			item := strings.ToLower(ing)
			for _, p := range b.vocab.HistoryProteins {
				if strings.Contains(item, p) && !seen[p] {
					seen[p] = true
					proteins = append(proteins, p)
				}
			}
		}
	}
	return proteins
}

func (b *Builder) writeTypeConstraints(sb *strings.Builder, req Request) {
	switch req.Type {
	case TypeTimeline:
		if req.TimeLimit > 0 {
			fmt.Fprintf(sb, "- Total time (prep + cook) must be under %d minutes\n", req.TimeLimit)
		}
	case TypeProtein:
		if req.Protein != "" {
			fmt.Fprintf(sb, "- Must use %s as the main protein\n", req.Protein)
		}
	case TypeCuisine:
		if req.Cuisine != "" {
			fmt.Fprintf(sb, "- Must be %s cuisine\n", req.Cuisine)
		}
	case TypePantry:
		if len(req.PantryItems) > 0 {
			fmt.Fprintf(sb, "- Must use these ingredients: %s\n", strings.Join(req.PantryItems, ", "))
		}
	}
}

func (b *Builder) writePreferenceBlock(sb *strings.Builder, req Request, prefs *Preferences) []string {
	var overrides []string

	sb.WriteString("\nUser Preferences:\n")

	// An explicitly requested meat protein waives the vegan/vegetarian flag
	// for this request. Allergies are never waived.
	proteinOverride := req.Type == TypeProtein && req.Protein != "" &&
		(prefs.IsVegan || prefs.IsVegetarian) &&
		containsString(b.vocab.ExplicitMeats, req.Protein)

	switch {
	case prefs.IsVegan && !proteinOverride:
		sb.WriteString("- Must be vegan (no animal products)\n")
	case prefs.IsVegetarian && !proteinOverride:
		sb.WriteString("- Must be vegetarian (no meat, but dairy/eggs ok)\n")
	case proteinOverride:
		label := "vegetarian"
		override := OverrideVegetarian
		if prefs.IsVegan {
			label = "vegan"
			override = OverrideVegan
		}
		fmt.Fprintf(sb, "- NOTE: User explicitly requested %s which overrides their usual %s preference for this recipe\n", req.Protein, label)
		overrides = append(overrides, override)
	}

	if len(prefs.Allergies) > 0 {
		fmt.Fprintf(sb, "- ALLERGIES (STRICT) - Must NOT contain: %s\n", strings.Join(prefs.Allergies, ", "))
	}

	if len(prefs.DietaryRestrictions) > 0 {
		fmt.Fprintf(sb, "- Dietary restrictions: %s\n", strings.Join(prefs.DietaryRestrictions, ", "))
	}

	// An explicit timeline request always wins over the stored window; the
	// override flag is purely the numeric comparison.
	if prefs.MinCookTime > 0 && prefs.MaxCookTime > 0 {
		if req.Type != TypeTimeline {
			fmt.Fprintf(sb, "- Total time (prep + cook) should be between %d and %d minutes\n", prefs.MinCookTime, prefs.MaxCookTime)
		} else if req.TimeLimit > 0 && (req.TimeLimit < prefs.MinCookTime || req.TimeLimit > prefs.MaxCookTime) {
			overrides = append(overrides, OverrideTime)
		}
	}

	if len(prefs.DislikedIngredients) > 0 {
		dislikes := prefs.DislikedIngredients
		if req.Type == TypeProtein && req.Protein != "" {
			// Requesting a protein the user normally dislikes must not
			// produce a contradictory instruction.
			dislikes = filterDislikes(dislikes, req.Protein)
		}
		if len(dislikes) > 0 {
			fmt.Fprintf(sb, "- DISLIKES (STRICT) - Must NOT contain: %s\n", strings.Join(dislikes, ", "))
		}
	}

	if len(prefs.LikedIngredients) > 0 {
		fmt.Fprintf(sb, "- Consider including these liked ingredients (suggestions only): %s\n", strings.Join(prefs.LikedIngredients, ", "))
	}

	switch req.Type {
	case TypeRandom:
		b.writePreferredProtein(sb, prefs)
		if len(prefs.PreferredCuisines) > 0 {
			cuisine := prefs.PreferredCuisines[b.intn(len(prefs.PreferredCuisines))]
			fmt.Fprintf(sb, "- MUST make it %s cuisine (this is a strict requirement)\n", cuisine)
		}
	case TypeTimeline:
		b.writePreferredProtein(sb, prefs)
	case TypeCuisine:
		if req.Protein == "" {
			b.writePreferredProtein(sb, prefs)
		}
		if req.Cuisine != "" && len(prefs.PreferredCuisines) > 0 &&
			!containsString(prefs.PreferredCuisines, req.Cuisine) {
			fmt.Fprintf(sb, "- NOTE: User explicitly requested %s cuisine which is not in their usual preferences\n", req.Cuisine)
		}
	}

	return overrides
}

// writePreferredProtein picks a dietarily valid preferred protein at random
// and emits it as a strict requirement.
func (b *Builder) writePreferredProtein(sb *strings.Builder, prefs *Preferences) {
	if len(prefs.PreferredProteins) == 0 {
		return
	}

	var valid []string
	switch {
	case prefs.IsVegan:
		for _, p := range prefs.PreferredProteins {
			if containsString(b.vocab.VeganProteins, p) {
				valid = append(valid, p)
			}
		}
	case prefs.IsVegetarian:
		for _, p := range prefs.PreferredProteins {
			if !containsString(b.vocab.ExplicitMeats, p) {
				valid = append(valid, p)
			}
		}
	default:
		valid = prefs.PreferredProteins
	}

	if len(valid) == 0 {
		return
	}

	protein := valid[b.intn(len(valid))]
	fmt.Fprintf(sb, "- MUST use %s as the main protein (this is a strict requirement)\n", protein)
}

func filterDislikes(dislikes []string, protein string) []string {
	target := strings.ToLower(protein)
	var kept []string
	for _, d := range dislikes {
		if !strings.Contains(strings.ToLower(d), target) && !strings.Contains(target, strings.ToLower(d)) {
			kept = append(kept, d)
		}
	}
	return kept
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func firstN(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

func distinct(list []string) []string {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

const outputFormat = `
Return the recipe in JSON format with the following structure:
{
  "title": "Recipe Name",
  "description": "Brief description",
  "prepTime": 15,
  "cookTime": 30,
  "totalTime": 45,
  "servings": 4,
  "difficulty": "Easy/Medium/Hard",
  "cuisine": "Cuisine type",
  "ingredients": [
    {"amount": "2 cups", "item": "rice"},
    {"amount": "1 lb", "item": "chicken breast"}
  ],
  "instructions": [
    "Step 1 instructions",
    "Step 2 instructions"
  ],
  "tips": "Optional cooking tips"
}`
