// Package recipes holds the owner-scoped recipe collection: the record model,
// the search filter and the clauses it composes into, the pager, the
// repositories that execute those clauses, and the HTTP surface.
package recipes

import (
	"strings"
)

// ingredientSeparator joins ingredients into their stored text form.
const ingredientSeparator = ","

// Recipe is a single record in an owner's collection.
// OwnerID is a back-reference only; it never leaves the service.
type Recipe struct {
	ID          int64    `json:"id" example:"7"`
	OwnerID     int64    `json:"-"`
	Description string   `json:"description" example:"Tomato soup"`
	IsVegan     bool     `json:"is_vegan" example:"true"`
	NumServings int      `json:"num_servings" example:"4"`
	Ingredients []string `json:"ingredients" example:"tomato,onion,salt"`
}

// NormalizeIngredients lowercases and trims each ingredient.
func NormalizeIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ing := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(ing)))
	}
	return out
}

// JoinIngredients renders ingredients in the canonical stored form: lowercase,
// comma-joined. Search clauses match against this text.
func JoinIngredients(in []string) string {
	return strings.Join(NormalizeIngredients(in), ingredientSeparator)
}

// SplitIngredients is the inverse of JoinIngredients.
func SplitIngredients(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ingredientSeparator)
}
