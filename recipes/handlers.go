package recipes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/auth"
)

// Handlers exposes RecipeService over HTTP.
type Handlers struct {
	service *RecipeService
}

// NewHandlers creates recipe Handlers.
func NewHandlers(service *RecipeService) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts /recipes behind authMiddleware and the ROLE_USER check.
func (h *Handlers) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/recipes", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(auth.RequireRole(auth.RoleUser))

		r.Get("/", h.HandleSearch())
		r.Post("/", h.HandleCreate())
		r.Get("/{recipeID}", h.HandleGet())
		r.Put("/{recipeID}", h.HandleUpdate())
		r.Delete("/{recipeID}", h.HandleDelete())
	})
}

func recipeIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "recipeID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequestError(fmt.Sprintf("Invalid recipe id '%s'", raw), err)
	}
	return id, nil
}

func decodeRecipe(r *http.Request) (RecipeRequest, error) {
	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return RecipeRequest{}, apperror.NewBadRequestError("Invalid request body", err)
	}
	return req, nil
}

// HandleSearch godoc
// @Summary Search recipes
// @Description Returns one page of the current owner's recipes matching every given filter.
// @Tags Recipes
// @Produce json
// @Security BearerAuth
// @Param description query string false "Case-insensitive substring of the description"
// @Param isVegan query bool false "Vegan flag"
// @Param numServings query int false "Exact number of servings"
// @Param ingredients query string false "Comma-separated ingredients that must all occur"
// @Param excludeIngredients query string false "Comma-separated ingredients that must not occur"
// @Param page query int false "Zero-based page index" default(0)
// @Param pageSize query int false "Page size" default(100)
// @Success 200 {object} recipes.SearchResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Malformed filter or paging value"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /recipes [get]
func (h *Handlers) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := auth.CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		q := r.URL.Query()
		filter, err := ParseFilter(q)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		page, err := ParsePageRequest(q)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Search(r.Context(), owner, filter, page)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGet godoc
// @Summary Get recipe
// @Tags Recipes
// @Produce json
// @Security BearerAuth
// @Param recipeID path int true "Recipe id"
// @Success 200 {object} recipes.RecipeResponse
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Router /recipes/{recipeID} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := auth.CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		id, err := recipeIDParam(r)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		recipe, err := h.service.Get(r.Context(), owner, id)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, RecipeResponse{
			StatusCode: http.StatusOK,
			Message:    "Recipe retrieved successfully",
			Recipe:     recipe,
		})
	}
}

// HandleCreate godoc
// @Summary Create recipe
// @Tags Recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe body recipes.RecipeRequest true "Recipe"
// @Success 201 {object} recipes.RecipeResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid recipe"
// @Router /recipes [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		owner, err := auth.CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		req, err := decodeRecipe(r)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		recipe, err := h.service.Create(r.Context(), owner, req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusCreated, RecipeResponse{
			StatusCode: http.StatusCreated,
			Message:    "Recipe created successfully",
			Recipe:     recipe,
		})
	}
}

// HandleUpdate godoc
// @Summary Update recipe
// @Tags Recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipeID path int true "Recipe id"
// @Param recipe body recipes.RecipeRequest true "Recipe"
// @Success 200 {object} recipes.RecipeResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid recipe"
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Router /recipes/{recipeID} [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		owner, err := auth.CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		id, err := recipeIDParam(r)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		req, err := decodeRecipe(r)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		recipe, err := h.service.Update(r.Context(), owner, id, req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, RecipeResponse{
			StatusCode: http.StatusOK,
			Message:    "Recipe updated successfully",
			Recipe:     recipe,
		})
	}
}

// HandleDelete godoc
// @Summary Delete recipe
// @Tags Recipes
// @Produce json
// @Security BearerAuth
// @Param recipeID path int true "Recipe id"
// @Success 200 {object} recipes.RecipeResponse
// @Failure 404 {object} apperror.ErrorResponse "Not Found"
// @Router /recipes/{recipeID} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := auth.CurrentOwner(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		id, err := recipeIDParam(r)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), owner, id); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, RecipeResponse{
			StatusCode: http.StatusOK,
			Message:    deletedMessage(id),
		})
	}
}
