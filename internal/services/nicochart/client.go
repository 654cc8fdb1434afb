package nicochart

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"voirank/internal/logging"
	"voirank/internal/services"
	"voirank/internal/share"
)

const (
	defaultTimeout = 30 * time.Second
	videosField    = 3
	viewsField     = 4
)

// Config captures the runtime settings for the counter downloads.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
}

// Client downloads monthly counter files.
type Client struct {
	cfg        Config
	httpClient *http.Client
	pacer      *services.Pacer
	logger     *slog.Logger
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

// WithLogger attaches a logger for per-year progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs a counter client.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		pacer:      services.NewPacer(cfg.Delay),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "nicochart")
	return client
}

// Sample is one counter line.
type Sample struct {
	Videos int64
	Views  int64
}

// Year returns the videos and views added during year.
func (c *Client) Year(ctx context.Context, year int) (share.PlatformYear, error) {
	start, err := c.sample(ctx, year, 1, true)
	if err != nil {
		return share.PlatformYear{Year: year}, err
	}
	end, err := c.sample(ctx, year, 12, false)
	if err != nil {
		return share.PlatformYear{Year: year}, err
	}
	return share.PlatformYear{
		Year:   year,
		Videos: end.Videos - start.Videos,
		Views:  end.Views - start.Views,
	}, nil
}

// Years fetches every year in [from, to]. A year that cannot be fetched is
// logged and reported as zeros so the merged table keeps one row per year.
func (c *Client) Years(ctx context.Context, from, to int) ([]share.PlatformYear, error) {
	out := make([]share.PlatformYear, 0, max(to-from+1, 0))
	for year := from; year <= to; year++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats, err := c.Year(ctx, year)
		if err != nil {
			logging.WarnWithContext(c.logger, "platform totals unavailable", "nicochart_fetch_failed",
				logging.Int("year", year),
				logging.Error(err),
				logging.String(logging.FieldImpact, "year reported as zero"),
			)
			out = append(out, share.PlatformYear{Year: year})
			continue
		}
		c.logger.Info("platform totals fetched",
			logging.Int("year", year),
			logging.Int64("videos", stats.Videos),
			logging.Int64("views", stats.Views),
		)
		out = append(out, stats)
	}
	return out, nil
}

func (c *Client) sample(ctx context.Context, year, month int, first bool) (Sample, error) {
	body, err := c.download(ctx, fmt.Sprintf("%s/%04d%02d.tsv", c.cfg.BaseURL, year, month))
	if err != nil {
		return Sample{}, err
	}
	return ParseSample(body, first)
}

func (c *Client) download(ctx context.Context, target string) (string, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return "", services.Wrap(services.ErrTimeout, "nicochart", "download", "wait for request slot", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build nicochart request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "nicochart", "download", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", services.Wrap(services.ErrNotFound, "nicochart", "download", target, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrExternalService, "nicochart", "download",
			fmt.Sprintf("%s: http %d", target, resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "nicochart", "download", "read body", err)
	}
	return string(body), nil
}

// ParseSample reads the first or last line of a counter file.
func ParseSample(body string, first bool) (Sample, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	line := lines[0]
	if !first {
		line = lines[len(lines)-1]
	}
	fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
	if len(fields) <= viewsField {
		return Sample{}, services.Wrap(services.ErrExternalService, "nicochart", "parse",
			fmt.Sprintf("expected at least %d fields, got %d", viewsField+1, len(fields)), nil)
	}
	videos, err := strconv.ParseInt(strings.TrimSpace(fields[videosField]), 10, 64)
	if err != nil {
		return Sample{}, services.Wrap(services.ErrExternalService, "nicochart", "parse", "videos", err)
	}
	views, err := strconv.ParseInt(strings.TrimSpace(fields[viewsField]), 10, 64)
	if err != nil {
		return Sample{}, services.Wrap(services.ErrExternalService, "nicochart", "parse", "views", err)
	}
	return Sample{Videos: videos, Views: views}, nil
}
