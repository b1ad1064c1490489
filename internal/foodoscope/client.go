// Package foodoscope is a client for the Foodoscope recipe catalog API.
package foodoscope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flavourfit/internal/logger"
	"flavourfit/internal/metrics"
	"flavourfit/internal/models"
)

const DefaultBaseURL = "http://cosylab.iiitd.edu.in:6969/recipe2-api"

// User-facing error strings carried in FetchResult.Error.
const (
	MsgQuotaExceeded = "API token limit reached. Please try again later."
	MsgNetworkError  = "Network error connecting to recipe API"

	quotaMarker = "Not enough tokens"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// UpstreamError is an error body returned by the catalog.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// FetchResult is the outcome of a recipe list request. Error is empty on
// success and holds a user-facing message otherwise; Recipes is never nil.
type FetchResult struct {
	Recipes []models.RawRecipe
	Error   string
}

// Detail is a single recipe with its ingredient phrases.
type Detail struct {
	Recipe      models.RawRecipe
	Ingredients []string
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logger.Logger
	metrics *metrics.Metrics
}

type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		http:    opts.HTTPClient,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchRecipes GETs a recipe list endpoint. Failures are reported through
// FetchResult.Error, never as a Go error.
func (c *Client) FetchRecipes(ctx context.Context, rawURL string) FetchResult {
	c.log.Debug("fetching recipes", "url", rawURL)

	start := time.Now()
	status, body, err := c.get(ctx, rawURL)
	if err != nil {
		c.observe(metrics.OutcomeNetwork, start)
		c.log.Error("recipe catalog unreachable", "url", rawURL, "error", err)
		return FetchResult{Recipes: []models.RawRecipe{}, Error: MsgNetworkError}
	}

	if !isSuccess(status) {
		msg, outcome := classifyFailure(status, body)
		c.observe(outcome, start)
		c.log.Error("recipe catalog error response", "url", rawURL, "status", status, "body", logger.Truncate(string(body), 512))
		return FetchResult{Recipes: []models.RawRecipe{}, Error: msg}
	}

	recipes, shape := ParseRecipes(body)
	if shape == ShapeNone {
		c.observe(metrics.OutcomeMalformed, start)
		c.log.Warn("recipe catalog response has no recipe list", "url", rawURL, "status", status)
	} else {
		c.observe(metrics.OutcomeOK, start)
	}
	c.log.Debug("parsed recipes", "url", rawURL, "count", len(recipes), "shape", string(shape))

	return FetchResult{Recipes: recipes}
}

type dailyResponse struct {
	Error   json.RawMessage `json:"error"`
	Payload struct {
		Data models.RawRecipe `json:"data"`
	} `json:"payload"`
}

// RecipeOfTheDayID asks the catalog for today's featured recipe id. An error
// body from the catalog is returned as *UpstreamError.
func (c *Client) RecipeOfTheDayID(ctx context.Context) (string, error) {
	start := time.Now()
	status, body, err := c.get(ctx, c.baseURL+"/recipe/recipeofday")
	if err != nil {
		c.observe(metrics.OutcomeNetwork, start)
		return "", fmt.Errorf("fetch recipe of the day: %w", err)
	}

	var resp dailyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.observe(metrics.OutcomeMalformed, start)
		if !isSuccess(status) {
			return "", &UpstreamError{Status: status, Message: fmt.Sprintf("API returned status %d", status)}
		}
		return "", fmt.Errorf("decode recipe of the day: %w", err)
	}

	if msg := errorText(resp.Error); msg != "" {
		c.observe(outcomeFor(msg), start)
		return "", &UpstreamError{Status: status, Message: msg}
	}
	if !isSuccess(status) {
		c.observe(metrics.OutcomeStatus, start)
		return "", &UpstreamError{Status: status, Message: fmt.Sprintf("API returned status %d", status)}
	}

	id := resp.Payload.Data.String("Recipe_id")
	if id == "" {
		c.observe(metrics.OutcomeMalformed, start)
		return "", fmt.Errorf("recipe of the day: %w", ErrRecipeNotFound)
	}

	c.observe(metrics.OutcomeOK, start)
	return id, nil
}

type detailResponse struct {
	Error       json.RawMessage  `json:"error"`
	Recipe      models.RawRecipe `json:"recipe"`
	Ingredients []struct {
		Phrase string `json:"ingredient_Phrase"`
	} `json:"ingredients"`
}

// RecipeDetail loads one recipe and its ingredient phrases. A response
// without a recipe yields ErrRecipeNotFound.
func (c *Client) RecipeDetail(ctx context.Context, id string) (*Detail, error) {
	start := time.Now()
	status, body, err := c.get(ctx, c.baseURL+"/search-recipe/"+url.PathEscape(id))
	if err != nil {
		c.observe(metrics.OutcomeNetwork, start)
		return nil, fmt.Errorf("fetch recipe %s: %w", id, err)
	}

	var resp detailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.observe(metrics.OutcomeMalformed, start)
		if !isSuccess(status) {
			return nil, &UpstreamError{Status: status, Message: fmt.Sprintf("API returned status %d", status)}
		}
		return nil, fmt.Errorf("decode recipe %s: %w", id, err)
	}

	if resp.Recipe == nil {
		if msg := errorText(resp.Error); msg != "" && !strings.Contains(strings.ToLower(msg), "not found") {
			c.observe(outcomeFor(msg), start)
			return nil, &UpstreamError{Status: status, Message: userMessage(msg, status)}
		}
		c.observe(metrics.OutcomeOK, start)
		return nil, ErrRecipeNotFound
	}

	ingredients := make([]string, 0, len(resp.Ingredients))
	for _, ing := range resp.Ingredients {
		ingredients = append(ingredients, ing.Phrase)
	}

	c.observe(metrics.OutcomeOK, start)
	return &Detail{Recipe: resp.Recipe, Ingredients: ingredients}, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func (c *Client) observe(outcome string, start time.Time) {
	c.metrics.ObserveUpstream(metrics.UpstreamRecipes, outcome, time.Since(start))
}

// classifyFailure maps a non-2xx body to the user-facing message.
func classifyFailure(status int, body []byte) (string, string) {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && errorText(env.Error) == quotaMarker {
		return MsgQuotaExceeded, metrics.OutcomeQuota
	}
	return fmt.Sprintf("API returned status %d", status), metrics.OutcomeStatus
}

func userMessage(upstream string, status int) string {
	if upstream == quotaMarker {
		return MsgQuotaExceeded
	}
	if !isSuccess(status) {
		return fmt.Sprintf("API returned status %d", status)
	}
	return upstream
}

func outcomeFor(msg string) string {
	if msg == quotaMarker {
		return metrics.OutcomeQuota
	}
	return metrics.OutcomeStatus
}

// errorText renders an "error" field. Strings are used as is; other JSON
// values are kept in their encoded form.
func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "false" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
