package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

const pageBody = `{
	"data": {
		"posts": [
			{
				"postId": "p1",
				"submission": {
					"mediaUrl": "https://cdn.example/p1.mp4",
					"thumbnail": "https://cdn.example/p1.jpg",
					"title": "First",
					"description": "first video"
				},
				"creator": {"name": "ada", "pic": "https://cdn.example/ada.png"},
				"reaction": {"count": 42}
			},
			{
				"postId": "",
				"submission": {"mediaUrl": "https://cdn.example/p2.mp4", "title": "Second"},
				"creator": {"name": "bob"},
				"reaction": {"count": 0}
			}
		]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append(opts, WithRateLimit(rate.Inf, 1))
	return NewClient(srv.URL, 5*time.Second, opts...)
}

func TestFetchPage(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		fmt.Fprint(w, pageBody)
	})

	page, err := c.FetchPage(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if gotPath != "/videos?page=0" {
		t.Errorf("requested %q, want /videos?page=0", gotPath)
	}
	if page.NextCursor != "1" {
		t.Errorf("NextCursor = %q, want 1", page.NextCursor)
	}
	if len(page.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(page.Items))
	}

	first := page.Items[0]
	if first.ID != "p1" || first.MediaRef != "https://cdn.example/p1.mp4" ||
		first.PosterRef != "https://cdn.example/p1.jpg" || first.Creator.Name != "ada" ||
		first.ReactionCount != 42 {
		t.Errorf("first item converted wrong: %+v", first)
	}

	// Missing postId falls back to a deterministic hash of the media URL.
	second := page.Items[1]
	if second.ID == "" || second.ID != hashString("https://cdn.example/p2.mp4") {
		t.Errorf("fallback ID = %q, want hash of media URL", second.ID)
	}
}

func TestFetchPageHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := c.FetchPage(context.Background(), "3"); err == nil {
		t.Fatal("expected an error for HTTP 500")
	}
}

func TestFetchPageBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	})

	if _, err := c.FetchPage(context.Background(), ""); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestFetchPageEmptyIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"posts": []}}`)
	})

	page, err := c.FetchPage(context.Background(), "7")
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("got %d items, want 0", len(page.Items))
	}
}

func TestFetchPageCacheFallback(t *testing.T) {
	cache, err := OpenCache(":memory:")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	fail := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, pageBody)
	}, WithCache(cache))

	// First fetch succeeds and fills the cache.
	if _, err := c.FetchPage(context.Background(), ""); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}

	// Source goes down: the cached page is served instead.
	fail = true
	page, err := c.FetchPage(context.Background(), "")
	if err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "p1" {
		t.Errorf("cached page = %+v, want the stored items", page.Items)
	}

	// A page that was never cached still fails.
	if _, err := c.FetchPage(context.Background(), "9"); err == nil {
		t.Error("uncached page should surface the fetch error")
	}
}

func TestNextCursor(t *testing.T) {
	if got := nextCursor("0"); got != "1" {
		t.Errorf("nextCursor(0) = %q, want 1", got)
	}
	if got := nextCursor("12"); got != "13" {
		t.Errorf("nextCursor(12) = %q, want 13", got)
	}
	if got := nextCursor("garbage"); got != "1" {
		t.Errorf("nextCursor(garbage) = %q, want 1", got)
	}
}
