package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhere(t *testing.T) {
	clauses := Compose(7, Filter{
		Description: strPtr("Soup"),
		IsVegan:     boolPtr(true),
		NumServings: intPtr(2),
		Include:     []string{"tomato"},
		Exclude:     []string{"100%"},
	})

	where, args, err := buildWhere(clauses)
	require.NoError(t, err)
	assert.Equal(t,
		"owner_id = $1 AND strpos(lower(description), $2) > 0 AND is_vegan = $3 AND num_servings = $4"+
			" AND strpos(ingredients, $5) > 0 AND strpos(ingredients, $6) = 0",
		where)
	assert.Equal(t, []interface{}{int64(7), "soup", true, 2, "tomato", "100%"}, args)
}

func TestBuildWhere_OwnerOnly(t *testing.T) {
	where, args, err := buildWhere(Compose(3, Filter{}))
	require.NoError(t, err)
	assert.Equal(t, "owner_id = $1", where)
	assert.Equal(t, []interface{}{int64(3)}, args)
}

func TestBuildWhere_RequiresOwnershipFirst(t *testing.T) {
	_, _, err := buildWhere(nil)
	assert.Error(t, err)

	_, _, err = buildWhere([]Clause{{Field: FieldIsVegan, Op: OpEquals, Value: true}})
	assert.Error(t, err)
}

func TestBuildWhere_RejectsUnknownField(t *testing.T) {
	_, _, err := buildWhere([]Clause{
		{Field: FieldOwnerID, Op: OpOwnerEquals, Value: int64(1)},
		{Field: Field(42), Op: OpEquals, Value: 1},
	})
	assert.Error(t, err)
}
