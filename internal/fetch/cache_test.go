package fetch

import (
	"path/filepath"
	"testing"

	"github.com/thuanng/reel/internal/feed"
)

func TestCachePutGet(t *testing.T) {
	c, err := OpenCache(":memory:")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer c.Close()

	items := []feed.Item{
		{ID: "a", MediaRef: "https://cdn.example/a.mp4", Title: "A",
			Creator: feed.Creator{Name: "ada", AvatarRef: "pic"}, ReactionCount: 3},
		{ID: "b", MediaRef: "https://cdn.example/b.mp4", Title: "B"},
	}
	if err := c.Put("0", items); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := c.Get("0")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("Get returned %+v, want the stored order", got)
	}
	if got[0].Creator.Name != "ada" || got[0].ReactionCount != 3 {
		t.Errorf("item fields lost: %+v", got[0])
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := OpenCache(":memory:")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get("5"); err != nil || ok {
		t.Errorf("Get of missing page = %v, %v; want false, nil", ok, err)
	}
}

func TestCachePutReplaces(t *testing.T) {
	c, err := OpenCache(":memory:")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer c.Close()

	if err := c.Put("0", []feed.Item{{ID: "old"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Put("0", []feed.Item{{ID: "new"}}); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, _, err := c.Get("0")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("Get = %+v, want the replaced page", got)
	}
}

func TestCacheFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := OpenCache(path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	if err := c.Put("0", []feed.Item{{ID: "a"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	c.Close()

	// Reopen: the page survives.
	c, err = OpenCache(path)
	if err != nil {
		t.Fatalf("reopen cache: %v", err)
	}
	defer c.Close()

	got, ok, err := c.Get("0")
	if err != nil || !ok || len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Get after reopen = %+v, %v, %v", got, ok, err)
	}
}
