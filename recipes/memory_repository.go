package recipes

import (
	"context"
	"sort"
	"sync"

	"github.com/user/recipefinder-go/apperror"
)

// MemoryRepository keeps recipes in process memory and evaluates clauses with
// Match. It backs the `memory` storage mode and the tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]Recipe
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[int64]Recipe)}
}

func cloneRecipe(r Recipe) Recipe {
	r.Ingredients = append([]string(nil), r.Ingredients...)
	return r
}

// Create stores r under the next id.
func (m *MemoryRepository) Create(_ context.Context, r *Recipe) (*Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	stored := cloneRecipe(*r)
	stored.ID = m.nextID
	stored.Ingredients = SplitIngredients(JoinIngredients(stored.Ingredients))
	m.records[stored.ID] = stored

	out := cloneRecipe(stored)
	return &out, nil
}

// Get returns the recipe with id if ownerID owns it.
func (m *MemoryRepository) Get(_ context.Context, ownerID, id int64) (*Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok || r.OwnerID != ownerID {
		return nil, notFound(id)
	}
	out := cloneRecipe(r)
	return &out, nil
}

// Update overwrites the recipe if r.OwnerID owns it.
func (m *MemoryRepository) Update(_ context.Context, r *Recipe) (*Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[r.ID]
	if !ok || existing.OwnerID != r.OwnerID {
		return nil, notFound(r.ID)
	}
	stored := cloneRecipe(*r)
	stored.Ingredients = SplitIngredients(JoinIngredients(stored.Ingredients))
	m.records[r.ID] = stored

	out := cloneRecipe(stored)
	return &out, nil
}

// Delete removes the recipe if ownerID owns it.
func (m *MemoryRepository) Delete(_ context.Context, ownerID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok || r.OwnerID != ownerID {
		return notFound(id)
	}
	delete(m.records, id)
	return nil
}

// Search filters every record with Match, sorts by id and cuts the window.
func (m *MemoryRepository) Search(_ context.Context, clauses []Clause, page PageRequest) (Page, error) {
	if len(clauses) == 0 || clauses[0].Op != OpOwnerEquals {
		return Page{}, apperror.NewInternalError("search must start with an ownership clause", nil)
	}

	m.mu.RLock()
	var matches []Recipe
	for _, r := range m.records {
		r := r
		ok, err := Match(&r, clauses)
		if err != nil {
			m.mu.RUnlock()
			return Page{}, apperror.NewInternalError("failed to evaluate recipe query", err)
		}
		if ok {
			matches = append(matches, cloneRecipe(r))
		}
	}
	m.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	result := Page{Items: []Recipe{}, Total: int64(len(matches))}
	start, end := page.window(result.Total)
	result.Items = append(result.Items, matches[start:end]...)
	return result, nil
}
