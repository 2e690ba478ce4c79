package recipes

import (
	"fmt"
	"strings"
)

// Field names a filterable attribute of a Recipe.
type Field int

const (
	FieldOwnerID Field = iota
	FieldDescription
	FieldIsVegan
	FieldNumServings
	FieldIngredients
)

func (f Field) String() string {
	switch f {
	case FieldOwnerID:
		return "owner_id"
	case FieldDescription:
		return "description"
	case FieldIsVegan:
		return "is_vegan"
	case FieldNumServings:
		return "num_servings"
	case FieldIngredients:
		return "ingredients"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Op is the kind of test a Clause applies.
type Op int

const (
	// OpOwnerEquals restricts results to one owner.
	OpOwnerEquals Op = iota
	// OpContainsFold is a case-insensitive substring match.
	OpContainsFold
	// OpEquals is plain equality.
	OpEquals
	// OpIngredientsContain requires the term to occur in the stored ingredient text.
	OpIngredientsContain
	// OpIngredientsNotContain requires the term not to occur in the stored ingredient text.
	OpIngredientsNotContain
)

func (o Op) String() string {
	switch o {
	case OpOwnerEquals:
		return "owner-equals"
	case OpContainsFold:
		return "contains-fold"
	case OpEquals:
		return "equals"
	case OpIngredientsContain:
		return "ingredients-contain"
	case OpIngredientsNotContain:
		return "ingredients-not-contain"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Clause is a single test. Value is an int64 for OpOwnerEquals, a bool or int
// for OpEquals, and a lowercase string for the text ops.
type Clause struct {
	Field Field
	Op    Op
	Value any
}

func (c Clause) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

// Compose turns a filter into the clauses a repository executes, all ANDed.
// The ownership clause is always first, so no composed query can reach
// another owner's records.
//
// Ingredient terms match as substrings of the joined ingredient text: "salt"
// also matches "saltpeter".
func Compose(ownerID int64, f Filter) []Clause {
	clauses := []Clause{{Field: FieldOwnerID, Op: OpOwnerEquals, Value: ownerID}}

	if f.Description != nil {
		if d := strings.ToLower(*f.Description); d != "" {
			clauses = append(clauses, Clause{Field: FieldDescription, Op: OpContainsFold, Value: d})
		}
	}
	if f.IsVegan != nil {
		clauses = append(clauses, Clause{Field: FieldIsVegan, Op: OpEquals, Value: *f.IsVegan})
	}
	if f.NumServings != nil {
		clauses = append(clauses, Clause{Field: FieldNumServings, Op: OpEquals, Value: *f.NumServings})
	}
	for _, term := range f.Include {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			clauses = append(clauses, Clause{Field: FieldIngredients, Op: OpIngredientsContain, Value: term})
		}
	}
	for _, term := range f.Exclude {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			clauses = append(clauses, Clause{Field: FieldIngredients, Op: OpIngredientsNotContain, Value: term})
		}
	}
	return clauses
}

// Match evaluates clauses against r in process. It is the reference
// semantics the SQL translation must agree with.
func Match(r *Recipe, clauses []Clause) (bool, error) {
	for _, c := range clauses {
		ok, err := matchClause(r, c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchClause(r *Recipe, c Clause) (bool, error) {
	switch c.Op {
	case OpOwnerEquals:
		id, ok := c.Value.(int64)
		if !ok || c.Field != FieldOwnerID {
			return false, fmt.Errorf("malformed clause %s", c)
		}
		return r.OwnerID == id, nil

	case OpContainsFold:
		term, ok := c.Value.(string)
		if !ok || c.Field != FieldDescription {
			return false, fmt.Errorf("malformed clause %s", c)
		}
		return strings.Contains(strings.ToLower(r.Description), strings.ToLower(term)), nil

	case OpEquals:
		switch c.Field {
		case FieldIsVegan:
			b, ok := c.Value.(bool)
			if !ok {
				return false, fmt.Errorf("malformed clause %s", c)
			}
			return r.IsVegan == b, nil
		case FieldNumServings:
			n, ok := c.Value.(int)
			if !ok {
				return false, fmt.Errorf("malformed clause %s", c)
			}
			return r.NumServings == n, nil
		}
		return false, fmt.Errorf("malformed clause %s", c)

	case OpIngredientsContain, OpIngredientsNotContain:
		term, ok := c.Value.(string)
		if !ok || c.Field != FieldIngredients {
			return false, fmt.Errorf("malformed clause %s", c)
		}
		found := strings.Contains(JoinIngredients(r.Ingredients), term)
		if c.Op == OpIngredientsContain {
			return found, nil
		}
		return !found, nil
	}
	return false, fmt.Errorf("unknown clause op %s", c.Op)
}
