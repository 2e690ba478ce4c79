package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/auth"
	"github.com/user/recipefinder-go/config"
	"github.com/user/recipefinder-go/logging"
	"github.com/user/recipefinder-go/recipes"
)

func testConfig() *config.AppConfig {
	bucket := config.BucketConfig{Capacity: 3, Refill: 3, Interval: time.Hour}
	return &config.AppConfig{
		Storage: config.StorageMemory,
		Auth: &config.AuthConfig{
			JWTSecret:           "integration-secret",
			AccessTokenDuration: time.Hour,
			Issuer:              "recipefinder-test",
			BcryptCost:          bcrypt.MinCost,
		},
		RateLimit: &config.RateLimitConfig{Register: bucket, Login: bucket, CredentialChange: bucket},
		Server:    &config.ServerConfig{Port: "0", LogLevel: "error", CORSAllowedOrigins: []string{"*"}},
	}
}

func newTestServer(t *testing.T, health func(context.Context) error) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(Deps{
		Config:  testConfig(),
		Logger:  logging.Discard(),
		Owners:  auth.NewMemoryOwnerStore(),
		Recipes: recipes.NewMemoryRepository(),
		Health:  health,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func register(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	var res auth.AuthenticationResponse
	code := call(t, srv, http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Email: email, FirstName: "Julia", LastName: "Child", Password: "s3cret",
	}, &res)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, res.Token)
	return res.Token
}

func recipeBody(desc string, vegan bool, servings int, ingredients ...string) map[string]any {
	return map[string]any{
		"description":  desc,
		"is_vegan":     vegan,
		"num_servings": servings,
		"ingredients":  ingredients,
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t, nil)
	alice := register(t, srv, "alice@example.com")
	bob := register(t, srv, "bob@example.com")

	var created recipes.RecipeResponse
	code := call(t, srv, http.MethodPost, "/api/v1/recipes", alice, recipeBody("Tomato Soup", true, 4, "Tomato", "Onion"), &created)
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, created.Recipe)
	assert.Equal(t, []string{"tomato", "onion"}, created.Recipe.Ingredients)

	code = call(t, srv, http.MethodPost, "/api/v1/recipes", alice, recipeBody("Beef Stew", false, 6, "beef", "onion"), nil)
	require.Equal(t, http.StatusCreated, code)
	code = call(t, srv, http.MethodPost, "/api/v1/recipes", bob, recipeBody("Bob's soup", true, 4, "tomato"), nil)
	require.Equal(t, http.StatusCreated, code)

	var page recipes.SearchResponse
	code = call(t, srv, http.MethodGet, "/api/v1/recipes?description=SOUP&pageSize=10", alice, nil, &page)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "Tomato Soup", page.Recipes[0].Description)

	code = call(t, srv, http.MethodGet, "/api/v1/recipes?ingredients=onion&excludeIngredients=beef", alice, nil, &page)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, page.Total)

	// Bob cannot see or delete Alice's recipe.
	var errResp apperror.ErrorResponse
	path := "/api/v1/recipes/" + strconv.FormatInt(created.Recipe.ID, 10)
	code = call(t, srv, http.MethodDelete, path, bob, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, http.StatusNotFound, errResp.Status)

	code = call(t, srv, http.MethodGet, path, alice, nil, nil)
	assert.Equal(t, http.StatusOK, code)

	var profile map[string]any
	code = call(t, srv, http.MethodGet, "/api/v1/users/me", alice, nil, &profile)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice@example.com", profile["email"])

	code = call(t, srv, http.MethodPut, "/api/v1/users/me", alice, map[string]string{"first_name": "Alice"}, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestRouter_LoginGate(t *testing.T) {
	srv := newTestServer(t, nil)
	for i := 0; i < 3; i++ {
		code := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "nobody@example.com", Password: "x"}, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	}
	var errResp apperror.ErrorResponse
	code := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "nobody@example.com", Password: "x"}, &errResp)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, http.StatusTooManyRequests, errResp.Status)

	// Other gates are unaffected.
	register(t, srv, "carol@example.com")
}

func TestRouter_RecipesRequireToken(t *testing.T) {
	srv := newTestServer(t, nil)
	var errResp apperror.ErrorResponse
	code := call(t, srv, http.MethodGet, "/api/v1/recipes", "", nil, &errResp)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authorization header is missing", errResp.Message)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, nil)
	var body map[string]string
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/healthz", "", nil, &body))
	assert.Equal(t, "ok", body["status"])

	down := newTestServer(t, func(context.Context) error { return errors.New("connection refused") })
	assert.Equal(t, http.StatusServiceUnavailable, call(t, down, http.MethodGet, "/healthz", "", nil, nil))
}

func TestRouter_UnknownRouteUsesEnvelope(t *testing.T) {
	srv := newTestServer(t, nil)
	var errResp apperror.ErrorResponse
	code := call(t, srv, http.MethodGet, "/api/v1/nothing-here", "", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Resource not found", errResp.Message)
}

func TestRecoverer_WritesEnvelope(t *testing.T) {
	h := recoverer(logging.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var errResp apperror.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "internal server error", errResp.Message)
}
