package recipes

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/auth"
	"github.com/user/recipefinder-go/logging"
)

var (
	alice = &auth.Owner{ID: 1, Handle: "alice@example.com", Role: auth.RoleUser}
	bob   = &auth.Owner{ID: 2, Handle: "bob@example.com", Role: auth.RoleUser}
)

func newTestService() (*RecipeService, *MemoryRepository) {
	repo := NewMemoryRepository()
	return NewRecipeService(repo, logging.Discard()), repo
}

func recipeReq(description string, vegan bool, servings int, ingredients ...string) RecipeRequest {
	return RecipeRequest{
		Description: description,
		IsVegan:     &vegan,
		NumServings: &servings,
		Ingredients: ingredients,
	}
}

func mustCreate(t *testing.T, s *RecipeService, owner *auth.Owner, req RecipeRequest) *Recipe {
	t.Helper()
	r, err := s.Create(context.Background(), owner, req)
	require.NoError(t, err)
	return r
}

func ids(rs []Recipe) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestRecipeService_CreateGetRoundTrip(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	created := mustCreate(t, s, alice, recipeReq("Tomato soup", true, 4, "Tomato", " Onion "))
	assert.NotZero(t, created.ID)

	got, err := s.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato soup", got.Description)
	assert.True(t, got.IsVegan)
	assert.Equal(t, 4, got.NumServings)
	assert.Equal(t, []string{"tomato", "onion"}, got.Ingredients)
	assert.Equal(t, alice.ID, got.OwnerID)
}

func TestRecipeService_CreateValidation(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	cases := []struct {
		name    string
		req     RecipeRequest
		message string
	}{
		{"zero servings", recipeReq("Soup", true, 0, "water"), "Number of servings must be 1 or greater"},
		{"servings beyond int4", recipeReq("Soup", true, math.MaxInt32+1, "water"), "Number of servings must be at most 2147483647"},
		{"blank description", recipeReq("  ", true, 2, "water"), "Description is required"},
		{"no ingredients", recipeReq("Soup", true, 2), "Ingredients are required"},
		{"blank ingredient", recipeReq("Soup", true, 2, "water", " "), "Ingredients are required"},
		{"comma in ingredient", recipeReq("Soup", true, 2, "salt,pepper"), "Ingredients must not contain commas"},
		{"missing vegan flag", RecipeRequest{Description: "Soup", NumServings: intPtr(2), Ingredients: []string{"water"}}, "Is vegan is required"},
		{"missing servings", RecipeRequest{Description: "Soup", IsVegan: boolPtr(false), Ingredients: []string{"water"}}, "Number of servings is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, alice, tc.req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidationError(err))
			assert.Equal(t, tc.message, err.Error())
		})
	}

	page, err := repo.Search(ctx, Compose(alice.ID, Filter{}), PageRequest{Page: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, page.Total, "failed validation must not store anything")
}

func TestRecipeService_SearchIsOwnerScoped(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	a1 := mustCreate(t, s, alice, recipeReq("Soup", true, 2, "water"))
	mustCreate(t, s, bob, recipeReq("Soup", true, 2, "water"))
	a2 := mustCreate(t, s, alice, recipeReq("Stew", false, 4, "beef"))

	resp, err := s.Search(ctx, alice, Filter{}, PageRequest{Page: 0, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, []int64{a1.ID, a2.ID}, ids(resp.Recipes))
}

func TestRecipeService_SearchByQuantityAndFlag(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	two := mustCreate(t, s, alice, recipeReq("Salad", true, 2, "lettuce"))
	mustCreate(t, s, alice, recipeReq("Roast", false, 6, "chicken"))
	twoMeat := mustCreate(t, s, alice, recipeReq("Steak", false, 2, "beef"))

	resp, err := s.Search(ctx, alice, Filter{NumServings: intPtr(2)}, PageRequest{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []int64{two.ID, twoMeat.ID}, ids(resp.Recipes))

	resp, err = s.Search(ctx, alice, Filter{NumServings: intPtr(2), IsVegan: boolPtr(false)}, PageRequest{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []int64{twoMeat.ID}, ids(resp.Recipes))
}

func TestRecipeService_SearchIngredients(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	withBoth := mustCreate(t, s, alice, recipeReq("One", true, 1, "ingredient1", "ingredient2"))
	onlyOne := mustCreate(t, s, alice, recipeReq("Two", true, 1, "ingredient1", "ingredient3"))
	mustCreate(t, s, alice, recipeReq("Three", true, 1, "ingredient3"))

	resp, err := s.Search(ctx, alice, Filter{Include: []string{"ingredient1"}}, PageRequest{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []int64{withBoth.ID, onlyOne.ID}, ids(resp.Recipes))

	resp, err = s.Search(ctx, alice, Filter{Include: []string{"ingredient1"}, Exclude: []string{"ingredient2"}}, PageRequest{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []int64{onlyOne.ID}, ids(resp.Recipes))
}

func TestRecipeService_SearchSubstringHazardPreserved(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	tenth := mustCreate(t, s, alice, recipeReq("Ten", true, 1, "ingredient10"))

	resp, err := s.Search(ctx, alice, Filter{Include: []string{"ingredient1"}}, PageRequest{PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []int64{tenth.ID}, ids(resp.Recipes))
}

func TestRecipeService_SearchPagination(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	var all []int64
	for i := 0; i < 25; i++ {
		all = append(all, mustCreate(t, s, alice, recipeReq(fmt.Sprintf("Recipe %d", i), true, 1, "water")).ID)
	}

	resp, err := s.Search(ctx, alice, Filter{}, PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	assert.Equal(t, all[10:20], ids(resp.Recipes))

	resp, err = s.Search(ctx, alice, Filter{}, PageRequest{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, all[20:], ids(resp.Recipes))

	resp, err = s.Search(ctx, alice, Filter{}, PageRequest{Page: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Recipes)
	assert.NotNil(t, resp.Recipes)
	assert.Equal(t, int64(25), resp.Total)
}

func TestRecipeService_SearchFarPagesAreEmpty(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		mustCreate(t, s, alice, recipeReq(fmt.Sprintf("Recipe %d", i), true, 1, "water"))
	}

	// Page*PageSize does not fit in an int64 for any of these.
	for _, page := range []PageRequest{
		{Page: math.MaxInt/4 + 1, PageSize: 4},
		{Page: math.MaxInt, PageSize: 2},
		{Page: math.MaxInt, PageSize: math.MaxInt},
	} {
		resp, err := s.Search(ctx, alice, Filter{}, page)
		require.NoError(t, err, "%+v", page)
		assert.Empty(t, resp.Recipes, "%+v", page)
		assert.Equal(t, int64(3), resp.Total, "%+v", page)
	}
}

func TestRecipeService_SearchHugePageSize(t *testing.T) {
	s, _ := newTestService()
	for i := 0; i < 3; i++ {
		mustCreate(t, s, alice, recipeReq(fmt.Sprintf("Recipe %d", i), true, 1, "water"))
	}

	resp, err := s.Search(context.Background(), alice, Filter{}, PageRequest{Page: 0, PageSize: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, resp.Recipes, 3)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestPageRequest_OffsetSaturates(t *testing.T) {
	assert.Equal(t, int64(20), PageRequest{Page: 2, PageSize: 10}.Offset())
	assert.Equal(t, int64(0), PageRequest{Page: 0, PageSize: math.MaxInt}.Offset())
	assert.Equal(t, int64(math.MaxInt64), PageRequest{Page: math.MaxInt, PageSize: 2}.Offset())
}

func TestRecipeService_SearchRejectsBadPage(t *testing.T) {
	s, _ := newTestService()
	_, err := s.Search(context.Background(), alice, Filter{}, PageRequest{Page: 0, PageSize: 0})
	assert.True(t, apperror.IsValidationError(err))
}

func TestRecipeService_CrossOwnerAccessIsNotFound(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	mine := mustCreate(t, s, alice, recipeReq("Soup", true, 2, "water"))
	other := mustCreate(t, s, alice, recipeReq("Stew", true, 2, "water"))

	_, err := s.Get(ctx, bob, mine.ID)
	assert.True(t, apperror.IsNotFound(err))

	_, err = s.Update(ctx, bob, mine.ID, recipeReq("Hijacked", false, 9, "x"))
	assert.True(t, apperror.IsNotFound(err))

	err = s.Delete(ctx, bob, mine.ID)
	assert.True(t, apperror.IsNotFound(err))

	still, err := s.Get(ctx, alice, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", still.Description)
	_, err = s.Get(ctx, alice, other.ID)
	assert.NoError(t, err)
}

func TestRecipeService_UpdateAndDelete(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	r := mustCreate(t, s, alice, recipeReq("Soup", true, 2, "water"))

	updated, err := s.Update(ctx, alice, r.ID, recipeReq("Better soup", false, 3, "Water", "Salt"))
	require.NoError(t, err)
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, "Better soup", updated.Description)
	assert.Equal(t, []string{"water", "salt"}, updated.Ingredients)

	require.NoError(t, s.Delete(ctx, alice, r.ID))
	_, err = s.Get(ctx, alice, r.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, fmt.Sprintf("Recipe with id %d not found", r.ID), err.Error())

	err = s.Delete(ctx, alice, r.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecipeService_RequiresOwner(t *testing.T) {
	s, _ := newTestService()
	_, err := s.Create(context.Background(), nil, recipeReq("Soup", true, 2, "water"))
	assert.True(t, apperror.IsAuthError(err))
}
