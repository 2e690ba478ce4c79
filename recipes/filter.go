package recipes

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/recipefinder-go/apperror"
)

// Filter is the sparse set of optional search criteria. A nil pointer or an
// empty term list means "no constraint".
type Filter struct {
	Description *string
	IsVegan     *bool
	NumServings *int
	Include     []string
	Exclude     []string
}

// Query parameter names. Each filter also accepts a generic alias; when both
// are sent the named parameter wins.
const (
	paramDescription = "description"
	paramIsVegan     = "isVegan"
	paramFlag        = "flag"
	paramNumServings = "numServings"
	paramQuantity    = "quantity"
	paramInclude     = "includeIngredients"
	paramIngredients = "ingredients"
	paramExclude     = "excludeIngredients"
	paramPage        = "page"
	paramPageSize    = "pageSize"
)

// Paging defaults.
const (
	DefaultPage     = 0
	DefaultPageSize = 100
)

func first(q url.Values, names ...string) (string, bool) {
	for _, name := range names {
		if _, ok := q[name]; ok {
			return q.Get(name), true
		}
	}
	return "", false
}

// ParseFilter reads the search filters from query parameters. Unknown
// parameters are ignored. Values that fail to parse are a BadRequestError.
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter

	// The description is matched as sent, surrounding spaces included.
	if v, ok := first(q, paramDescription); ok && v != "" {
		f.Description = &v
	}

	if v, ok := first(q, paramIsVegan, paramFlag); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Filter{}, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid value for %s: '%s' is not a boolean", paramIsVegan, v), err)
		}
		f.IsVegan = &b
	}

	if v, ok := first(q, paramNumServings, paramQuantity); ok && v != "" {
		// num_servings is a 32-bit column.
		n64, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return Filter{}, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid value for %s: '%s' is not a number", paramNumServings, v), err)
		}
		n := int(n64)
		f.NumServings = &n
	}

	if v, ok := first(q, paramInclude, paramIngredients); ok {
		f.Include = SplitTerms(v)
	}
	if v, ok := first(q, paramExclude); ok {
		f.Exclude = SplitTerms(v)
	}

	return f, nil
}

// SplitTerms splits a comma-separated list into trimmed, lowercased terms and
// drops the empty ones, so "", "," and " , " all yield no terms.
func SplitTerms(s string) []string {
	var terms []string
	for _, part := range strings.Split(s, ",") {
		if term := strings.ToLower(strings.TrimSpace(part)); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// ParsePageRequest reads page (default 0) and pageSize (default 100).
func ParsePageRequest(q url.Values) (PageRequest, error) {
	pr := PageRequest{Page: DefaultPage, PageSize: DefaultPageSize}

	if v := q.Get(paramPage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return PageRequest{}, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid value for %s: '%s' is not a number", paramPage, v), err)
		}
		pr.Page = n
	}
	if v := q.Get(paramPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return PageRequest{}, apperror.NewBadRequestError(
				fmt.Sprintf("Invalid value for %s: '%s' is not a number", paramPageSize, v), err)
		}
		pr.PageSize = n
	}

	if err := pr.Validate(); err != nil {
		return PageRequest{}, err
	}
	return pr, nil
}
