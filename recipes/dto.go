package recipes

import (
	"github.com/user/recipefinder-go/validation"
)

// RecipeRequest is the body of create and update. Pointer fields let a
// missing value be told apart from false or zero.
type RecipeRequest struct {
	Description string   `json:"description" example:"Tomato soup" validate:"notblank"`
	IsVegan     *bool    `json:"is_vegan" example:"true" validate:"required"`
	NumServings *int     `json:"num_servings" example:"4" validate:"required,min=1,max=2147483647"`
	Ingredients []string `json:"ingredients" example:"tomato,onion" validate:"notblank,dive,notblank,excludes=0x2C"`
}

var recipeMessages = validation.Messages{
	"description.notblank":  "Description is required",
	"is_vegan.required":     "Is vegan is required",
	"num_servings.required": "Number of servings is required",
	"num_servings.min":      "Number of servings must be 1 or greater",
	"num_servings.max":      "Number of servings must be at most 2147483647",
	"ingredients.notblank":  "Ingredients are required",
	"ingredients.excludes":  "Ingredients must not contain commas",
}

// Validate reports every invalid field.
func (r RecipeRequest) Validate() error {
	return validation.Struct(r, recipeMessages)
}

// toRecipe builds the record for ownerID. Call only after Validate.
func (r RecipeRequest) toRecipe(ownerID int64) *Recipe {
	return &Recipe{
		OwnerID:     ownerID,
		Description: r.Description,
		IsVegan:     *r.IsVegan,
		NumServings: *r.NumServings,
		Ingredients: NormalizeIngredients(r.Ingredients),
	}
}

// RecipeResponse wraps a single recipe with a status line.
type RecipeResponse struct {
	StatusCode int     `json:"status_code" example:"200"`
	Message    string  `json:"message" example:"Recipe retrieved successfully"`
	Recipe     *Recipe `json:"recipe"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Recipes    []Recipe `json:"recipes"`
	Total      int64    `json:"total" example:"42"`
	TotalPages int      `json:"total_pages" example:"5"`
	Page       int      `json:"page" example:"0"`
	PageSize   int      `json:"page_size" example:"10"`
}
