package foodoscope

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flavourfit/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(Options{BaseURL: baseURL, APIKey: "test-key", Timeout: 2 * time.Second})
}

func TestFetchRecipes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantCount int
		wantErr   string
	}{
		{
			name:      "payload data envelope",
			status:    http.StatusOK,
			body:      `{"success":true,"payload":{"data":[{"Recipe_id":"1"},{"Recipe_id":"2"}]}}`,
			wantCount: 2,
		},
		{
			name:      "recipes envelope",
			status:    http.StatusOK,
			body:      `{"recipes":[{"Recipe_id":"1"}]}`,
			wantCount: 1,
		},
		{
			name:      "payload array",
			status:    http.StatusOK,
			body:      `{"payload":[{"Recipe_id":"1"},{"Recipe_id":"2"},{"Recipe_id":"3"}]}`,
			wantCount: 3,
		},
		{
			name:      "bare array",
			status:    http.StatusOK,
			body:      `[{"Recipe_id":"1"}]`,
			wantCount: 1,
		},
		{
			name:      "unknown object",
			status:    http.StatusOK,
			body:      `{"payload":{"data":{"Recipe_id":"1"}}}`,
			wantCount: 0,
		},
		{
			name:      "non json success",
			status:    http.StatusOK,
			body:      `<html>maintenance</html>`,
			wantCount: 0,
		},
		{
			name:    "quota exhausted",
			status:  http.StatusForbidden,
			body:    `{"error":"Not enough tokens"}`,
			wantErr: "API token limit reached. Please try again later.",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"boom"}`,
			wantErr: "API returned status 500",
		},
		{
			name:    "error with text body",
			status:  http.StatusBadGateway,
			body:    `bad gateway`,
			wantErr: "API returned status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			client := newTestClient(srv.URL)

			res := client.FetchRecipes(context.Background(), srv.URL+"/recipes-calories/calories")

			require.NotNil(t, res.Recipes)
			assert.Len(t, res.Recipes, tt.wantCount)
			assert.Equal(t, tt.wantErr, res.Error)
		})
	}
}

func TestFetchRecipes_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.New("test", reg)
	require.NoError(t, err)

	client := NewClient(Options{BaseURL: url, APIKey: "test-key", Timeout: time.Second, Metrics: m})
	res := client.FetchRecipes(context.Background(), url+"/protein/protein-range")

	assert.Empty(t, res.Recipes)
	assert.NotNil(t, res.Recipes)
	assert.Equal(t, MsgNetworkError, res.Error)

	count, err := testutil.GatherAndCount(reg, "test_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFetchRecipes_ContextCanceled(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `[]`)
	client := newTestClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := client.FetchRecipes(ctx, srv.URL)
	assert.Equal(t, MsgNetworkError, res.Error)
}

func TestRecipeOfTheDayID(t *testing.T) {
	t.Run("string id", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"payload":{"data":{"Recipe_id":"2610","Recipe_title":"Dal"}}}`)
		id, err := newTestClient(srv.URL).RecipeOfTheDayID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2610", id)
	})

	t.Run("numeric id", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"payload":{"data":{"Recipe_id":2610}}}`)
		id, err := newTestClient(srv.URL).RecipeOfTheDayID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2610", id)
	})

	t.Run("upstream error body", func(t *testing.T) {
		srv := newTestServer(t, http.StatusForbidden, `{"error":"Not enough tokens"}`)
		_, err := newTestClient(srv.URL).RecipeOfTheDayID(context.Background())

		var upErr *UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, "Not enough tokens", upErr.Message)
		assert.Equal(t, http.StatusForbidden, upErr.Status)
	})

	t.Run("missing id", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"payload":{"data":{}}}`)
		_, err := newTestClient(srv.URL).RecipeOfTheDayID(context.Background())
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("requests the daily endpoint", func(t *testing.T) {
		var path string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = w.Write([]byte(`{"payload":{"data":{"Recipe_id":"1"}}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL + "/recipe2-api/").RecipeOfTheDayID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/recipe2-api/recipe/recipeofday", path)
	})
}

func TestRecipeDetail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var path string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = w.Write([]byte(`{
				"recipe": {"Recipe_id": "2610", "Recipe_title": "Dal Tadka", "Calories": "312.4"},
				"ingredients": [{"ingredient_Phrase": "1 cup lentils"}, {"ingredient_Phrase": "2 tsp ghee"}]
			}`))
		}))
		defer srv.Close()

		detail, err := newTestClient(srv.URL).RecipeDetail(context.Background(), "2610")
		require.NoError(t, err)
		assert.Equal(t, "/search-recipe/2610", path)
		assert.Equal(t, "Dal Tadka", detail.Recipe.String("Recipe_title"))
		assert.Equal(t, []string{"1 cup lentils", "2 tsp ghee"}, detail.Ingredients)
	})

	t.Run("missing recipe", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"ingredients":[]}`)
		_, err := newTestClient(srv.URL).RecipeDetail(context.Background(), "999")
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("quota", func(t *testing.T) {
		srv := newTestServer(t, http.StatusForbidden, `{"error":"Not enough tokens"}`)
		_, err := newTestClient(srv.URL).RecipeDetail(context.Background(), "1")

		var upErr *UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, MsgQuotaExceeded, upErr.Message)
	})

	t.Run("not json", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `oops`)
		_, err := newTestClient(srv.URL).RecipeDetail(context.Background(), "1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrRecipeNotFound)
	})
}
