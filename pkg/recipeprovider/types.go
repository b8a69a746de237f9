package recipeprovider

import "strings"

type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients"`
}

// Recipe is a search or random result. Fields the provider omits stay zero.
type Recipe struct {
	ID                  int64                `json:"id"`
	Title               string               `json:"title"`
	Image               string               `json:"image"`
	ReadyInMinutes      int                  `json:"readyInMinutes,omitempty"`
	Servings            int                  `json:"servings,omitempty"`
	SourceURL           string               `json:"sourceUrl,omitempty"`
	Diets               []string             `json:"diets,omitempty"`
	Nutrition           *Nutrition           `json:"nutrition,omitempty"`
	ExtendedIngredients []ExtendedIngredient `json:"extendedIngredients,omitempty"`
}

// Calories returns the amount of the first nutrient, or 0 when the recipe
// carries no nutrition. The provider lists calories first when asked for them.
func (r *Recipe) Calories() float64 {
	if r.Nutrition == nil || len(r.Nutrition.Nutrients) == 0 {
		return 0
	}
	return r.Nutrition.Nutrients[0].Amount
}

type ExtendedIngredient struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	NameClean string  `json:"nameClean"`
	Aisle     string  `json:"aisle"`
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
	Original  string  `json:"original,omitempty"`
}

// PreferredName is the cleaned name when present, else the raw name.
func (i ExtendedIngredient) PreferredName() string {
	if strings.TrimSpace(i.NameClean) != "" {
		return i.NameClean
	}
	return i.Name
}

// RecipeInformation is the full detail of one recipe.
type RecipeInformation struct {
	Recipe
	Instructions string `json:"instructions,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

type SearchParams struct {
	Query        string
	Diet         string
	Intolerances string
	MinCalories  *int
	MaxCalories  *int
	Number       int
}

type RandomParams struct {
	Diet         string
	Intolerances string
	Tags         string
	Number       int
}

type searchResponse struct {
	Results      []Recipe `json:"results"`
	TotalResults int      `json:"totalResults"`
}

type randomResponse struct {
	Recipes []Recipe `json:"recipes"`
}
