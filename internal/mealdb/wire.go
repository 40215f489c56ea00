package mealdb

import (
	"strconv"

	"github.com/pageza/receitas/backend/internal/model"
)

// mealsEnvelope is the response shape of every meal endpoint. Meals is null
// when nothing matched.
type mealsEnvelope struct {
	Meals []meal `json:"meals"`
}

type categoriesEnvelope struct {
	Categories []category `json:"categories"`
}

// meal keeps the raw keyed fields; strIngredientN/strMeasureN are only
// addressed here and mapped onto fixed slots by toRecipe.
type meal map[string]*string

type category struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumbnail   string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

func (m meal) field(key string) string {
	if v, ok := m[key]; ok && v != nil {
		return *v
	}
	return ""
}

func (m meal) toRecipe() model.Recipe {
	r := model.Recipe{
		ID:           m.field("idMeal"),
		Name:         m.field("strMeal"),
		Thumbnail:    m.field("strMealThumb"),
		Category:     m.field("strCategory"),
		Area:         m.field("strArea"),
		Instructions: m.field("strInstructions"),
		Tags:         m.field("strTags"),
		YouTube:      m.field("strYoutube"),
		Source:       m.field("strSource"),
	}
	for i := range r.Ingredients {
		n := strconv.Itoa(i + 1)
		r.Ingredients[i] = model.Ingredient{
			Name:    m.field("strIngredient" + n),
			Measure: m.field("strMeasure" + n),
		}
	}
	return r
}

func (c category) toCategory() model.Category {
	return model.Category{
		ID:          c.ID,
		Name:        c.Name,
		Thumbnail:   c.Thumbnail,
		Description: c.Description,
	}
}
