// Package recipeprovider is the client for the external recipe API.
package recipeprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	OpSearch      = "search"
	OpRandom      = "random"
	OpInformation = "information"
)

// Provider is what the services need from the recipe API.
type Provider interface {
	Search(ctx context.Context, params SearchParams) ([]Recipe, error)
	Random(ctx context.Context, params RandomParams) ([]Recipe, error)
	Information(ctx context.Context, id int64) (*RecipeInformation, error)
}

// Observer receives one call per outbound request.
type Observer interface {
	ObserveProviderCall(op string, status string, duration time.Duration)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recipe provider %s responded with status %d", e.Op, e.StatusCode)
}

var ErrNotFound = errors.New("recipe not found at provider")

type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RatePerSecond  float64
	Burst          int
	DetailCacheTTL time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	details    *cache.Cache
	observer   Observer
}

type Option func(*Client)

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	ttl := cfg.DetailCacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: rate.NewLimiter(limit, burst),
		details: cache.New(ttl, 2*ttl),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Search(ctx context.Context, params SearchParams) ([]Recipe, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(defaultNumber(params.Number, 10)))
	q.Set("addRecipeInformation", "true")
	q.Set("addRecipeNutrition", "true")
	q.Set("fillIngredients", "true")
	setIfNotEmpty(q, "query", params.Query)
	setIfNotEmpty(q, "diet", params.Diet)
	setIfNotEmpty(q, "intolerances", params.Intolerances)
	if params.MinCalories != nil {
		q.Set("minCalories", strconv.Itoa(*params.MinCalories))
	}
	if params.MaxCalories != nil {
		q.Set("maxCalories", strconv.Itoa(*params.MaxCalories))
	}

	var resp searchResponse
	if err := c.get(ctx, OpSearch, "/complexSearch", q, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return []Recipe{}, nil
	}
	return resp.Results, nil
}

func (c *Client) Random(ctx context.Context, params RandomParams) ([]Recipe, error) {
	q := url.Values{}
	q.Set("number", strconv.Itoa(defaultNumber(params.Number, 1)))
	q.Set("limitLicense", "true")
	q.Set("addRecipeInformation", "true")

	setIfNotEmpty(q, "diet", params.Diet)
	setIfNotEmpty(q, "intolerances", params.Intolerances)
	setIfNotEmpty(q, "include-tags", strings.ToLower(params.Tags))

	var resp randomResponse
	if err := c.get(ctx, OpRandom, "/random", q, &resp); err != nil {
		return nil, err
	}
	if resp.Recipes == nil {
		return []Recipe{}, nil
	}
	return resp.Recipes, nil
}

// Information returns full recipe detail. Results are cached per recipe id.
func (c *Client) Information(ctx context.Context, id int64) (*RecipeInformation, error) {
	key := strconv.FormatInt(id, 10)
	if cached, ok := c.details.Get(key); ok {
		return cached.(*RecipeInformation), nil
	}

	q := url.Values{}
	q.Set("includeNutrition", "false")

	var info RecipeInformation
	if err := c.get(ctx, OpInformation, "/"+key+"/information", q, &info); err != nil {
		return nil, err
	}

	c.details.Set(key, &info, cache.DefaultExpiration)
	return &info, nil
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out interface{}) (err error) {
	start := time.Now()
	status := "error"
	defer func() {
		if c.observer != nil {
			c.observer.ObserveProviderCall(op, status, time.Since(start))
		}
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("recipe provider %s: rate limiter: %w", op, err)
	}

	q.Set("apiKey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("recipe provider %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recipe provider %s: %w", op, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("recipe provider %s: %w", op, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		status = "decode_error"
		return fmt.Errorf("recipe provider %s: decode response: %w", op, err)
	}
	return nil
}

func defaultNumber(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

func setIfNotEmpty(q url.Values, key, value string) {
	if strings.TrimSpace(value) != "" {
		q.Set(key, value)
	}
}
