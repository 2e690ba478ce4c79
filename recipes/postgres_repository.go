package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipefinder-go/apperror"
)

const recipeColumns = "id, owner_id, description, is_vegan, num_servings, ingredients"

// columns maps the closed Field set onto table columns. Nothing from a request
// is ever interpolated into SQL; values always travel as parameters.
var columns = map[Field]string{
	FieldOwnerID:     "owner_id",
	FieldDescription: "description",
	FieldIsVegan:     "is_vegan",
	FieldNumServings: "num_servings",
	FieldIngredients: "ingredients",
}

// PostgresRepository is the Repository backed by the `recipes` table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var (
		r           Recipe
		ingredients string
	)
	if err := row.Scan(&r.ID, &r.OwnerID, &r.Description, &r.IsVegan, &r.NumServings, &ingredients); err != nil {
		return nil, err
	}
	r.Ingredients = SplitIngredients(ingredients)
	return &r, nil
}

func notFound(id int64) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Recipe with id %d not found", id), nil)
}

// Create inserts a recipe and returns it with its new id.
func (p *PostgresRepository) Create(ctx context.Context, r *Recipe) (*Recipe, error) {
	query := `
		INSERT INTO recipes (owner_id, description, is_vegan, num_servings, ingredients)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + recipeColumns

	created, err := scanRecipe(p.db.QueryRow(ctx, query,
		r.OwnerID, r.Description, r.IsVegan, r.NumServings, JoinIngredients(r.Ingredients)))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create recipe", err)
	}
	return created, nil
}

// Get returns the recipe with id if ownerID owns it.
func (p *PostgresRepository) Get(ctx context.Context, ownerID, id int64) (*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND owner_id = $2`
	r, err := scanRecipe(p.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, apperror.NewDatabaseError("failed to get recipe", err)
	}
	return r, nil
}

// Update overwrites the recipe's fields if r.OwnerID owns it.
func (p *PostgresRepository) Update(ctx context.Context, r *Recipe) (*Recipe, error) {
	query := `
		UPDATE recipes
		SET description = $1, is_vegan = $2, num_servings = $3, ingredients = $4
		WHERE id = $5 AND owner_id = $6
		RETURNING ` + recipeColumns

	updated, err := scanRecipe(p.db.QueryRow(ctx, query,
		r.Description, r.IsVegan, r.NumServings, JoinIngredients(r.Ingredients), r.ID, r.OwnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(r.ID)
		}
		return nil, apperror.NewDatabaseError("failed to update recipe", err)
	}
	return updated, nil
}

// Delete removes the recipe if ownerID owns it.
func (p *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete recipe", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

// Search counts all matches, then reads one window in id order.
func (p *PostgresRepository) Search(ctx context.Context, clauses []Clause, page PageRequest) (Page, error) {
	where, args, err := buildWhere(clauses)
	if err != nil {
		return Page{}, apperror.NewInternalError("failed to build recipe query", err)
	}

	var total int64
	if err := p.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipes WHERE `+where, args...).Scan(&total); err != nil {
		return Page{}, apperror.NewDatabaseError("failed to count recipes", err)
	}

	result := Page{Items: []Recipe{}, Total: total}
	if total == 0 || page.Offset() >= total {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE %s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		recipeColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.PageSize, page.Offset())

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return Page{}, apperror.NewDatabaseError("failed to search recipes", err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return Page{}, apperror.NewDatabaseError("failed to read recipe row", err)
		}
		result.Items = append(result.Items, *r)
	}
	if err := rows.Err(); err != nil {
		return Page{}, apperror.NewDatabaseError("failed to search recipes", err)
	}
	return result, nil
}

// buildWhere translates clauses into a parameterized WHERE body. The first
// clause must be the ownership clause.
//
// Text matching uses strpos rather than LIKE so that '%' and '_' in a search
// term are taken literally.
func buildWhere(clauses []Clause) (string, []interface{}, error) {
	if len(clauses) == 0 || clauses[0].Op != OpOwnerEquals {
		return "", nil, errors.New("search must start with an ownership clause")
	}

	var conds []string
	var args []interface{}
	argID := 1

	for _, c := range clauses {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown field %s", c.Field)
		}

		var cond string
		switch c.Op {
		case OpOwnerEquals, OpEquals:
			cond = fmt.Sprintf("%s = $%d", col, argID)
			args = append(args, c.Value)
		case OpContainsFold:
			term, ok := c.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("malformed clause %s", c)
			}
			cond = fmt.Sprintf("strpos(lower(%s), $%d) > 0", col, argID)
			args = append(args, strings.ToLower(term))
		case OpIngredientsContain, OpIngredientsNotContain:
			term, ok := c.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("malformed clause %s", c)
			}
			cmp := "> 0"
			if c.Op == OpIngredientsNotContain {
				cmp = "= 0"
			}
			cond = fmt.Sprintf("strpos(%s, $%d) %s", col, argID, cmp)
			args = append(args, strings.ToLower(term))
		default:
			return "", nil, fmt.Errorf("unknown clause op %s", c.Op)
		}
		conds = append(conds, cond)
		argID++
	}

	return strings.Join(conds, " AND "), args, nil
}
