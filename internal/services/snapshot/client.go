package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voirank/internal/dataset"
	"voirank/internal/logging"
	"voirank/internal/services"
)

const (
	// MaxOffset is the deepest _offset the search API accepts.
	MaxOffset = 100000
	// MaxPageSize is the largest _limit the search API accepts.
	MaxPageSize = 100

	defaultTargets = "tagsExact"
	defaultTimeout = 30 * time.Second
	fieldList      = "contentId,title,userId,viewCounter,startTime,tags"
	sortOrder      = "-startTime"
)

// Config captures the runtime settings for the search client.
type Config struct {
	BaseURL   string
	UserAgent string
	PageSize  int
	Timeout   time.Duration
	Delay     time.Duration
}

// Client pages through the snapshot search API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	pacer      *services.Pacer
	logger     *slog.Logger
	maxOffset  int
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for per-page progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs a search client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	if cfg.PageSize <= 0 || cfg.PageSize > MaxPageSize {
		cfg.PageSize = MaxPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		pacer:      services.NewPacer(cfg.Delay),
		maxOffset:  MaxOffset,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "snapshot")
	return client
}

// Query selects the videos of one category.
type Query struct {
	Category string
	Keywords []string
	// Targets defaults to exact tag matching.
	Targets string
	// Limit stops the search after this many records; zero fetches all.
	Limit int
}

type searchResponse struct {
	Meta struct {
		Status       int    `json:"status"`
		TotalCount   int    `json:"totalCount"`
		ErrorCode    string `json:"errorCode"`
		ErrorMessage string `json:"errorMessage"`
	} `json:"meta"`
	Data []dataset.Record `json:"data"`
}

// Search fetches every record matching q and returns them as a blob ready
// for dataset.BlobStore.Save.
func (c *Client) Search(ctx context.Context, q Query) (*dataset.Blob, error) {
	keywords := make([]string, 0, len(q.Keywords))
	for _, kw := range q.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil, services.Wrap(services.ErrValidation, "snapshot", "search", "no keywords for "+q.Category, nil)
	}
	if c.cfg.BaseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "snapshot", "search", "base url required", nil)
	}

	blob := &dataset.Blob{Meta: dataset.Meta{Category: q.Category, Keywords: keywords}}
	seen := make(map[string]struct{})
	var cursor time.Time
	offset := 0
	for {
		page, err := c.fetchPage(ctx, q, keywords, offset, cursor)
		if err != nil {
			return nil, err
		}
		if blob.Meta.Status == 0 {
			blob.Meta.Status = page.Meta.Status
			blob.Meta.TotalCount = page.Meta.TotalCount
		}
		for _, record := range page.Data {
			if _, dup := seen[record.ContentID]; dup {
				continue
			}
			seen[record.ContentID] = struct{}{}
			blob.Data = append(blob.Data, record)
			if q.Limit > 0 && len(blob.Data) >= q.Limit {
				break
			}
		}
		c.logger.Debug("snapshot page fetched",
			logging.Category(q.Category),
			logging.Int("offset", offset),
			logging.Int("received", len(page.Data)),
			logging.Int("total", len(blob.Data)),
		)
		if q.Limit > 0 && len(blob.Data) >= q.Limit {
			break
		}
		if len(page.Data) < c.cfg.PageSize {
			break
		}
		offset += c.cfg.PageSize
		if offset > c.maxOffset {
			last := page.Data[len(page.Data)-1].StartTime
			if last.IsZero() || (!cursor.IsZero() && !last.Before(cursor)) {
				break
			}
			cursor = last
			offset = 0
		}
	}
	blob.Meta.FetchedAt = time.Now().UTC()
	c.logger.Info("snapshot search complete",
		logging.Category(q.Category),
		logging.Int("total_count", blob.Meta.TotalCount),
		logging.Int("records", len(blob.Data)),
	)
	return blob, nil
}

func (c *Client) fetchPage(ctx context.Context, q Query, keywords []string, offset int, cursor time.Time) (*searchResponse, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, services.Wrap(services.ErrTimeout, "snapshot", "search", "wait for request slot", err)
	}
	reqURL := c.pageURL(q, keywords, offset, cursor)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "snapshot", "search", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "snapshot", "search", "read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(statusMarker(resp.StatusCode), "snapshot", "search",
			fmt.Sprintf("http %d: %s", resp.StatusCode, snippet(body)), nil)
	}

	var page searchResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, services.Wrap(services.ErrExternalService, "snapshot", "search", "decode response", err)
	}
	if page.Meta.Status != 0 && page.Meta.Status != http.StatusOK {
		return nil, services.Wrap(statusMarker(page.Meta.Status), "snapshot", "search",
			fmt.Sprintf("api status %d %s: %s", page.Meta.Status, page.Meta.ErrorCode, page.Meta.ErrorMessage), nil)
	}
	return &page, nil
}

func (c *Client) pageURL(q Query, keywords []string, offset int, cursor time.Time) string {
	targets := strings.TrimSpace(q.Targets)
	if targets == "" {
		targets = defaultTargets
	}
	values := url.Values{}
	values.Set("q", strings.Join(keywords, " OR "))
	values.Set("targets", targets)
	values.Set("fields", fieldList)
	values.Set("_sort", sortOrder)
	values.Set("_offset", strconv.Itoa(offset))
	values.Set("_limit", strconv.Itoa(c.cfg.PageSize))
	if c.cfg.UserAgent != "" {
		values.Set("_context", c.cfg.UserAgent)
	}
	if !cursor.IsZero() {
		values.Set("filters[startTime][lte]", cursor.Format(time.RFC3339))
	}
	return c.cfg.BaseURL + "?" + values.Encode()
}

func statusMarker(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return services.ErrValidation
	case status == http.StatusNotFound:
		return services.ErrNotFound
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return services.ErrTransient
	default:
		return services.ErrExternalService
	}
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		return text[:200] + "..."
	}
	return text
}
