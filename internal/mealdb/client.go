// Package mealdb is a thin client for TheMealDB JSON API.
//
// Every call degrades instead of failing: transport errors, unexpected status
// codes and undecodable bodies are logged and turned into an empty result.
// Nothing is retried and the client sets no timeout of its own; callers
// abandon requests through their context.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/receitas/backend/internal/model"
)

// DefaultBaseURL is the public free-tier endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// RandomBatchSize is the number of random.php requests issued per random listing.
const RandomBatchSize = 10

// Client issues GET requests against the recipe API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     logger,
	}
}

// FetchRecipes lists recipes for the given mode. The result may be empty but
// is never an error.
func (c *Client) FetchRecipes(ctx context.Context, mode model.SearchMode, query string) []model.Recipe {
	var (
		path  string
		param string
	)
	switch mode {
	case model.ModeRandom:
		return c.random(ctx)
	case model.ModeSearch:
		path, param = "/search.php", "s"
	case model.ModeCategory:
		path, param = "/filter.php", "c"
	case model.ModeIngredient:
		path, param = "/filter.php", "i"
	default:
		c.log.Warn("unknown search mode", "mode", mode)
		return []model.Recipe{}
	}

	var env mealsEnvelope
	if err := c.get(ctx, path, url.Values{param: {query}}, &env); err != nil {
		c.log.Warn("fetch recipes failed", "mode", mode, "query", query, "error", err)
		return []model.Recipe{}
	}
	return toRecipes(env.Meals)
}

// LookupRecipe fetches the full record for id, or nil when it does not exist
// or cannot be fetched.
func (c *Client) LookupRecipe(ctx context.Context, id string) *model.Recipe {
	var env mealsEnvelope
	if err := c.get(ctx, "/lookup.php", url.Values{"i": {id}}, &env); err != nil {
		c.log.Warn("lookup recipe failed", "recipe_id", id, "error", err)
		return nil
	}
	if len(env.Meals) == 0 {
		c.log.Debug("recipe not found", "recipe_id", id)
		return nil
	}
	r := env.Meals[0].toRecipe()
	return &r
}

// Categories lists all recipe categories.
func (c *Client) Categories(ctx context.Context) []model.Category {
	var env categoriesEnvelope
	if err := c.get(ctx, "/categories.php", nil, &env); err != nil {
		c.log.Warn("fetch categories failed", "error", err)
		return []model.Category{}
	}
	out := make([]model.Category, 0, len(env.Categories))
	for _, cat := range env.Categories {
		out = append(out, cat.toCategory())
	}
	return out
}

// random fans out RandomBatchSize independent requests and keeps one recipe
// per successful response. A failed slot is dropped, never the batch.
func (c *Client) random(ctx context.Context) []model.Recipe {
	slots := make([]*model.Recipe, RandomBatchSize)

	var g errgroup.Group
	for i := range slots {
		g.Go(func() error {
			var env mealsEnvelope
			if err := c.get(ctx, "/random.php", nil, &env); err != nil {
				c.log.Warn("random recipe failed", "slot", i, "error", err)
				return nil
			}
			if len(env.Meals) == 0 {
				return nil
			}
			r := env.Meals[0].toRecipe()
			slots[i] = &r
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.Recipe, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func toRecipes(meals []meal) []model.Recipe {
	out := make([]model.Recipe, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.toRecipe())
	}
	return out
}
