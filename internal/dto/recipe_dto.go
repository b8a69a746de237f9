package dto

type RecipeSearchRequest struct {
	Query        string `query:"query" validate:"max=200"`
	Diet         string `query:"diet" validate:"max=100"`
	Intolerances string `query:"intolerances" validate:"max=500"`
	Number       int    `query:"number" validate:"omitempty,min=1,max=100"`
}

type RandomRecipeRequest struct {
	Diet   string `query:"diet" validate:"max=100"`
	Number int    `query:"number" validate:"omitempty,min=1,max=100"`
}

type RecipeSummaryResponse struct {
	Id             int64   `json:"id"`
	Title          string  `json:"title"`
	Image          string  `json:"image"`
	Calories       float64 `json:"calories"`
	ReadyInMinutes int     `json:"ready_in_minutes,omitempty"`
	Servings       int     `json:"servings,omitempty"`
	SourceURL      string  `json:"source_url,omitempty"`
}

type RecipeIngredientDetailResponse struct {
	Name   string  `json:"name"`
	Aisle  string  `json:"aisle"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type RecipeDetailResponse struct {
	RecipeSummaryResponse
	Instructions string                            `json:"instructions,omitempty"`
	Summary      string                            `json:"summary,omitempty"`
	Ingredients  []*RecipeIngredientDetailResponse `json:"ingredients"`
}
