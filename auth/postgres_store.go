package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipefinder-go/apperror"
)

const ownerColumns = "id, handle, first_name, last_name, password_hash, role, created_at"

// PostgresOwnerStore is the OwnerStore backed by the `owners` table.
type PostgresOwnerStore struct {
	db *pgxpool.Pool
}

// NewPostgresOwnerStore creates a PostgresOwnerStore.
func NewPostgresOwnerStore(db *pgxpool.Pool) *PostgresOwnerStore {
	return &PostgresOwnerStore{db: db}
}

func scanOwner(row pgx.Row) (*Owner, error) {
	var o Owner
	err := row.Scan(&o.ID, &o.Handle, &o.FirstName, &o.LastName, &o.HashedPassword, &o.Role, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new owner. A taken handle is reported as a ConflictError.
func (s *PostgresOwnerStore) Create(ctx context.Context, owner *Owner) (*Owner, error) {
	query := `
		INSERT INTO owners (handle, first_name, last_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + ownerColumns

	created, err := scanOwner(s.db.QueryRow(ctx, query,
		owner.Handle, owner.FirstName, owner.LastName, owner.HashedPassword, owner.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError(
				fmt.Sprintf("Customer with email %s already exists", owner.Handle), nil)
		}
		return nil, apperror.NewDatabaseError("failed to create owner", err)
	}
	return created, nil
}

// FindByHandle looks an owner up by its exact handle.
func (s *PostgresOwnerStore) FindByHandle(ctx context.Context, handle string) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE handle = $1`
	owner, err := scanOwner(s.db.QueryRow(ctx, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(ownerNotFoundMessage, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get owner", err)
	}
	return owner, nil
}

// FindByID looks an owner up by id.
func (s *PostgresOwnerStore) FindByID(ctx context.Context, id int64) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = $1`
	owner, err := scanOwner(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Customer with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get owner", err)
	}
	return owner, nil
}

// UpdatePassword replaces the stored hash.
func (s *PostgresOwnerStore) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	tag, err := s.db.Exec(ctx, `UPDATE owners SET password_hash = $1 WHERE id = $2`, hashedPassword, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to update password", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Customer with id %d not found", id), nil)
	}
	return nil
}
