package nickname

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voirank/internal/logging"
	"voirank/internal/services"
)

// NotFound is returned when the endpoint answers without a nickname.
const NotFound = "Unknown (No nickname found)"

const defaultTimeout = 30 * time.Second

// Config captures the runtime settings for nickname lookups.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
}

// Cache remembers resolved nicknames between runs.
type Cache interface {
	Nickname(ctx context.Context, userID uint64) (string, bool, error)
	PutNickname(ctx context.Context, userID uint64, name string) error
}

// Client looks up nicknames one request at a time.
type Client struct {
	cfg        Config
	httpClient *http.Client
	pacer      *services.Pacer
	cache      Cache
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

// WithCache consults cache before the network and stores found names in it.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger attaches a logger for cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs a nickname client.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
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
	client.logger = logging.NewComponentLogger(client.logger, "nickname")
	return client
}

type userInfo struct {
	User struct {
		Nickname string `xml:"nickname"`
	} `xml:"user"`
}

// Lookup returns the nickname for userID. ok is false when the returned
// string is a placeholder rather than a real name.
func (c *Client) Lookup(ctx context.Context, userID uint64) (name string, ok bool) {
	if c.cache != nil {
		cached, hit, err := c.cache.Nickname(ctx, userID)
		if err != nil {
			c.logger.Debug("nickname cache read failed", logging.Uint64("user_id", userID), logging.Error(err))
		} else if hit {
			return cached, true
		}
	}

	name, ok = c.fetch(ctx, userID)
	if ok && c.cache != nil {
		if err := c.cache.PutNickname(ctx, userID, name); err != nil {
			c.logger.Debug("nickname cache write failed", logging.Uint64("user_id", userID), logging.Error(err))
		}
	}
	return name, ok
}

func (c *Client) fetch(ctx context.Context, userID uint64) (string, bool) {
	if err := c.pacer.Wait(ctx); err != nil {
		return errorPlaceholder(err), false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL(userID), nil)
	if err != nil {
		return errorPlaceholder(err), false
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorPlaceholder(err), false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error %d", resp.StatusCode), false
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorPlaceholder(err), false
	}
	var info userInfo
	if err := xml.Unmarshal(body, &info); err != nil {
		return errorPlaceholder(err), false
	}
	nickname := strings.TrimSpace(info.User.Nickname)
	if nickname == "" {
		return NotFound, false
	}
	return nickname, true
}

func (c *Client) lookupURL(userID uint64) string {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return c.cfg.BaseURL + "?id=" + strconv.FormatUint(userID, 10)
	}
	q := u.Query()
	q.Set("id", strconv.FormatUint(userID, 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func errorPlaceholder(err error) string {
	return "Error: " + err.Error()
}
