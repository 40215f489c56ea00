package model

import "strings"

// MaxIngredients is the number of ingredient/measure slots a recipe carries.
const MaxIngredients = 20

// Ingredient is one positional ingredient slot. A slot is present only when
// Name is non-empty after trimming.
type Ingredient struct {
	Name    string `json:"name,omitempty"`
	Measure string `json:"measure,omitempty"`
}

// Present reports whether the slot holds an ingredient.
func (i Ingredient) Present() bool {
	return strings.TrimSpace(i.Name) != ""
}

// Recipe is a dish record from the recipe API. Absent fields are empty strings.
type Recipe struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Thumbnail    string                     `json:"thumbnail,omitempty"`
	Category     string                     `json:"category,omitempty"`
	Area         string                     `json:"area,omitempty"`
	Instructions string                     `json:"instructions,omitempty"`
	Tags         string                     `json:"tags,omitempty"`
	YouTube      string                     `json:"youtube,omitempty"`
	Source       string                     `json:"source,omitempty"`
	Ingredients  [MaxIngredients]Ingredient `json:"ingredients"`
}

// IngredientSlot pairs a present ingredient with its zero-based slot index.
type IngredientSlot struct {
	Slot int `json:"slot"`
	Ingredient
}

// PresentIngredients returns the populated slots in slot order.
func (r *Recipe) PresentIngredients() []IngredientSlot {
	var out []IngredientSlot
	for i, ing := range r.Ingredients {
		if ing.Present() {
			out = append(out, IngredientSlot{Slot: i, Ingredient: ing})
		}
	}
	return out
}

// TagList splits the comma-separated tag field, dropping blanks.
func (r *Recipe) TagList() []string {
	if r.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(r.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Category is a recipe category used to populate filters.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
}

// SearchMode selects which recipe API listing is queried.
type SearchMode string

const (
	ModeSearch     SearchMode = "search"
	ModeCategory   SearchMode = "category"
	ModeIngredient SearchMode = "ingredient"
	ModeRandom     SearchMode = "random"
)

// Valid reports whether m is one of the known modes.
func (m SearchMode) Valid() bool {
	switch m {
	case ModeSearch, ModeCategory, ModeIngredient, ModeRandom:
		return true
	}
	return false
}
