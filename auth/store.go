package auth

import "context"

// OwnerStore persists owners. An owner is created once and afterwards only
// its password hash changes.
//
// Implementations return apperror NotFoundError when no owner matches,
// ConflictError when a handle is taken, and DatabaseError for anything else.
type OwnerStore interface {
	// Create inserts owner, assigning ID and CreatedAt, and returns the stored row.
	Create(ctx context.Context, owner *Owner) (*Owner, error)
	FindByHandle(ctx context.Context, handle string) (*Owner, error)
	FindByID(ctx context.Context, id int64) (*Owner, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
}

// ownerNotFoundMessage is used when a handle lookup finds nothing; it does not
// echo the handle back.
const ownerNotFoundMessage = "Customer not found"
