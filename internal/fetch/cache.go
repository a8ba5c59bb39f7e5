package fetch

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/thuanng/reel/internal/feed"

	_ "modernc.org/sqlite"
)

// Cache stores fetched pages in SQLite so a previously seen feed can be
// rebuilt when the source is unreachable. It caches fetched content only,
// never playback state.
//
// Thread-safety: methods are safe for concurrent use via an internal mutex;
// the client calls it from fetch goroutines.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenCache creates a page cache at the given database path. Use ":memory:"
// for an ephemeral cache.
func OpenCache(dbPath string) (*Cache, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open page cache: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping page cache: %w", err)
	}
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	c := &Cache{db: db}
	if err := c.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return c, nil
}

func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		cursor             TEXT NOT NULL,
		position           INTEGER NOT NULL,
		id                 TEXT NOT NULL,
		media_ref          TEXT,
		poster_ref         TEXT,
		title              TEXT,
		description        TEXT,
		creator_name       TEXT,
		creator_avatar_ref TEXT,
		reaction_count     INTEGER DEFAULT 0,
		fetched_at         DATETIME NOT NULL,
		PRIMARY KEY (cursor, position)
	);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}

// Put replaces the cached copy of one page.
func (c *Cache) Put(cursor string, items []feed.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pages WHERE cursor = ?", cursor); err != nil {
		return fmt.Errorf("clear page %s: %w", cursor, err)
	}

	now := time.Now()
	for i, item := range items {
		_, err := tx.Exec(`
			INSERT INTO pages (cursor, position, id, media_ref, poster_ref, title,
				description, creator_name, creator_avatar_ref, reaction_count, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cursor, i, item.ID, item.MediaRef, item.PosterRef, item.Title,
			item.Description, item.Creator.Name, item.Creator.AvatarRef,
			item.ReactionCount, now)
		if err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// Get returns the cached copy of one page, if present.
func (c *Cache) Get(cursor string) ([]feed.Item, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(`
		SELECT id, media_ref, poster_ref, title, description,
			creator_name, creator_avatar_ref, reaction_count
		FROM pages WHERE cursor = ? ORDER BY position`, cursor)
	if err != nil {
		return nil, false, fmt.Errorf("query page %s: %w", cursor, err)
	}
	defer rows.Close()

	var items []feed.Item
	for rows.Next() {
		var item feed.Item
		if err := rows.Scan(&item.ID, &item.MediaRef, &item.PosterRef, &item.Title,
			&item.Description, &item.Creator.Name, &item.Creator.AvatarRef,
			&item.ReactionCount); err != nil {
			return nil, false, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate page %s: %w", cursor, err)
	}
	return items, len(items) > 0, nil
}
