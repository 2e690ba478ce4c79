package recipes

import (
	"context"
	"fmt"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/auth"
	"github.com/user/recipefinder-go/logging"
)

// RecipeService orchestrates the recipe operations. Every method takes the
// owner resolved from the bearer token; owner ids from request input are never used.
type RecipeService struct {
	repo Repository
	log  logging.Logger
}

// NewRecipeService creates a RecipeService.
func NewRecipeService(repo Repository, log logging.Logger) *RecipeService {
	return &RecipeService{repo: repo, log: log}
}

func requireOwner(owner *auth.Owner) error {
	if owner == nil {
		return apperror.NewAuthError("Authentication required", nil)
	}
	return nil
}

// Create validates req and stores it for owner. The returned recipe carries its new id.
func (s *RecipeService) Create(ctx context.Context, owner *auth.Owner, req RecipeRequest) (*Recipe, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.toRecipe(owner.ID))
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx, s.log).Debug(ctx, "recipe created", "owner_id", owner.ID, "recipe_id", created.ID)
	return created, nil
}

// Get returns one of owner's recipes.
func (s *RecipeService) Get(ctx context.Context, owner *auth.Owner, id int64) (*Recipe, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, owner.ID, id)
}

// Update replaces one of owner's recipes.
func (s *RecipeService) Update(ctx context.Context, owner *auth.Owner, id int64, req RecipeRequest) (*Recipe, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.toRecipe(owner.ID)
	r.ID = id
	return s.repo.Update(ctx, r)
}

// Delete removes one of owner's recipes.
func (s *RecipeService) Delete(ctx context.Context, owner *auth.Owner, id int64) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, owner.ID, id); err != nil {
		return err
	}
	logging.FromContext(ctx, s.log).Debug(ctx, "recipe deleted", "owner_id", owner.ID, "recipe_id", id)
	return nil
}

// Search composes filter into owner-scoped clauses and returns one page.
func (s *RecipeService) Search(ctx context.Context, owner *auth.Owner, filter Filter, page PageRequest) (*SearchResponse, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	clauses := Compose(owner.ID, filter)
	result, err := s.repo.Search(ctx, clauses, page)
	if err != nil {
		return nil, err
	}

	return &SearchResponse{
		Recipes:    result.Items,
		Total:      result.Total,
		TotalPages: result.TotalPages(page.PageSize),
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, nil
}

// deletedMessage is the status line of a successful delete.
func deletedMessage(id int64) string {
	return fmt.Sprintf("Recipe with id %d deleted successfully", id)
}
