package recipes

import "context"

// Repository stores recipes. Every method that addresses a single record is
// scoped by (ownerID, id); a record owned by someone else is reported exactly
// like a missing one, as an apperror NotFoundError.
type Repository interface {
	// Create inserts r, assigning r.ID before returning.
	Create(ctx context.Context, r *Recipe) (*Recipe, error)
	Get(ctx context.Context, ownerID, id int64) (*Recipe, error)
	// Update replaces the mutable fields of the record (r.OwnerID, r.ID).
	Update(ctx context.Context, r *Recipe) (*Recipe, error)
	Delete(ctx context.Context, ownerID, id int64) error
	// Search executes clauses and returns one window of matches ordered by
	// ascending id, together with the total match count.
	Search(ctx context.Context, clauses []Clause, page PageRequest) (Page, error)
}
