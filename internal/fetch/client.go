// Package fetch retrieves pages of feed items from the remote short-video
// API and converts them to feed items. It implements feed.Source.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/thuanng/reel/internal/feed"
)

// userAgent identifies the client to the remote API.
const userAgent = "reel/1.0 (https://github.com/thuanng/reel)"

// Client fetches pages from a paginated JSON video API. The cursor is the
// page index as a decimal string; the empty cursor means page 0.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	cache   *Cache
	log     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache stores successful pages in the cache and falls back to it when
// a fetch fails.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the client logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// WithRateLimit caps outgoing requests. Defaults to 2 req/s, burst 1.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, burst) }
}

// NewClient creates a Client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire shapes, mirroring the remote API.
type apiResponse struct {
	Data struct {
		Posts []apiPost `json:"posts"`
	} `json:"data"`
}

type apiPost struct {
	PostID     string `json:"postId"`
	Submission struct {
		MediaURL    string `json:"mediaUrl"`
		Thumbnail   string `json:"thumbnail"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"submission"`
	Creator struct {
		Name string `json:"name"`
		Pic  string `json:"pic"`
	} `json:"creator"`
	Reaction struct {
		Count int `json:"count"`
	} `json:"reaction"`
}

// FetchPage requests one page of items. A transport or decode failure is
// returned as an error with the cursor unconsumed, so the same page can be
// retried; when a cache is configured, a previously stored copy of the page
// is served instead. An empty page signals end-of-data to the caller.
func (c *Client) FetchPage(ctx context.Context, cursor string) (feed.Page, error) {
	page := cursor
	if page == "" {
		page = "0"
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return feed.Page{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	items, err := c.getPage(ctx, page)
	if err != nil {
		if c.cache != nil {
			if cached, ok, cacheErr := c.cache.Get(page); cacheErr == nil && ok {
				if c.log != nil {
					c.log.Info("serving cached page", "page", page, "fetchErr", err)
				}
				return feed.Page{Items: cached, NextCursor: nextCursor(page)}, nil
			}
		}
		return feed.Page{}, err
	}

	if c.cache != nil && len(items) > 0 {
		if cacheErr := c.cache.Put(page, items); cacheErr != nil && c.log != nil {
			c.log.Warn("page cache write failed", "page", page, "err", cacheErr)
		}
	}

	return feed.Page{Items: items, NextCursor: nextCursor(page)}, nil
}

func (c *Client) getPage(ctx context.Context, page string) ([]feed.Item, error) {
	url := fmt.Sprintf("%s/videos?page=%s", c.baseURL, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page %s: HTTP %d %s", page, resp.StatusCode, resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode page %s: %w", page, err)
	}

	items := make([]feed.Item, 0, len(body.Data.Posts))
	for _, post := range body.Data.Posts {
		items = append(items, convertPost(post))
	}
	return items, nil
}

// convertPost maps one wire post to a feed item.
func convertPost(post apiPost) feed.Item {
	id := post.PostID
	if id == "" {
		id = hashString(post.Submission.MediaURL)
	}
	return feed.Item{
		ID:          id,
		MediaRef:    post.Submission.MediaURL,
		PosterRef:   post.Submission.Thumbnail,
		Title:       post.Submission.Title,
		Description: post.Submission.Description,
		Creator: feed.Creator{
			Name:      post.Creator.Name,
			AvatarRef: post.Creator.Pic,
		},
		ReactionCount: post.Reaction.Count,
	}
}

// nextCursor advances the page-index cursor by one.
func nextCursor(page string) string {
	n, err := strconv.Atoi(page)
	if err != nil {
		return "1"
	}
	return strconv.Itoa(n + 1)
}

// hashString creates a short deterministic id from a string.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8])
}
