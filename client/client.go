package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

const dateLayout = "2006-01-02"

// Client talks to the price-tracker REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryConfig
	notifier   Notifier
	log        *slog.Logger
	sleep      func(ctx context.Context, delay time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetryConfig overrides the retry behavior.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithNotifier routes terminal-failure notices to a custom sink.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the API at baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retry:      DefaultRetryConfig,
		log:        slog.Default(),
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = slogNotifier{log: c.log}
	}
	return c
}

// ItemQuery filters the paginated item listing. Zero-valued optional fields
// are omitted from the request entirely, never sent empty.
type ItemQuery struct {
	Page       int
	Size       int
	Search     string
	CategoryID *uint
}

// PriceRange bounds a price-history query with inclusive calendar dates.
// Zero times are omitted.
type PriceRange struct {
	StartDate time.Time
	EndDate   time.Time
}

// HealthStatus is the health probe response.
type HealthStatus struct {
	Status string `json:"status"`
}

// ListItems fetches one page of items. Page defaults to 0 and Size to 10.
func (c *Client) ListItems(ctx context.Context, q ItemQuery) (*models.ItemPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	size := q.Size
	if size <= 0 {
		size = 10
	}
	params.Set("size", strconv.Itoa(size))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.CategoryID != nil {
		params.Set("categoryId", strconv.FormatUint(uint64(*q.CategoryID), 10))
	}

	var page models.ItemPage
	if err := c.getJSON(ctx, "/items", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetItem fetches a single item by database id.
func (c *Client) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := c.getJSON(ctx, fmt.Sprintf("/items/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItemPrices fetches the price history of an item in arrival order.
func (c *Client) ListItemPrices(ctx context.Context, itemID uint, r PriceRange) ([]models.PriceEntry, error) {
	params := url.Values{}
	if !r.StartDate.IsZero() {
		params.Set("startDate", r.StartDate.Format(dateLayout))
	}
	if !r.EndDate.IsZero() {
		params.Set("endDate", r.EndDate.Format(dateLayout))
	}

	var entries []models.PriceEntry
	if err := c.getJSON(ctx, fmt.Sprintf("/items/%d/prices", itemID), params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches a single category by database id.
func (c *Client) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := c.getJSON(ctx, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategoryItems fetches all items of one category.
func (c *Client) ListCategoryItems(ctx context.Context, id uint) ([]models.Item, error) {
	var items []models.Item
	if err := c.getJSON(ctx, fmt.Sprintf("/categories/%d/items", id), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Health probes the API health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.getJSON(ctx, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// getJSON runs one GET through the retry path. On terminal failure it
// notifies exactly once and returns the error unchanged.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	err := c.getWithRetry(ctx, path, params, out)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// The caller gave up, nothing to report
		return err
	}
	c.notifier.Notify(UserMessage(err), NoticeDuration)
	return err
}

// getWithRetry executes the request with exponential backoff on transient
// failures. 4xx responses and client-side failures are never retried.
func (c *Client) getWithRetry(ctx context.Context, path string, params url.Values, out any) error {
	var lastErr error

	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		err := c.doGet(ctx, path, params, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() {
			return err
		}

		if attempt == c.retry.MaxAttempts-1 {
			break
		}

		delay := calculateBackoff(attempt, c.retry)
		c.log.Warn("retrying request", "path", path, "attempt", attempt+1, "delay", delay, "error", err)
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.retry.MaxAttempts, lastErr)
}

// doGet performs a single request attempt.
func (c *Client) doGet(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &APIError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorMessage extracts the server's {"error": ...} body when present.
func errorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
