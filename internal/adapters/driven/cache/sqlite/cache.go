// Package sqlite provides an on-disk read-through cache for downloaded
// chart and indicator payloads, backed by SQLite. It implements the
// driven.BlobCache port.
//
// The cache is a pure convenience layer: it owns no domain state, and
// every entry can be rebuilt by re-fetching the URL it is keyed on.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/worldfacts/catalog-mcp/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.BlobCache = (*Cache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key       TEXT PRIMARY KEY,
	data      BLOB NOT NULL,
	stored_at INTEGER NOT NULL
);`

// Cache is a SQLite-backed blob cache with per-entry TTL expiry.
type Cache struct {
	db  *sql.DB
	ttl time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// New opens (or creates) the cache database under dir. Entries older
// than ttl are treated as misses and lazily deleted.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "downloads.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising cache schema: %w", err)
	}

	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns the cached payload for key, or ok=false on a miss or an
// expired entry.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var storedAt int64
	err := c.db.QueryRowContext(ctx,
		"SELECT data, stored_at FROM blobs WHERE key = ?", key,
	).Scan(&data, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	if c.ttl > 0 && c.now().Unix()-storedAt > int64(c.ttl.Seconds()) {
		// Expired: drop it so the table does not grow without bound.
		_, _ = c.db.ExecContext(ctx, "DELETE FROM blobs WHERE key = ?", key)
		return nil, false, nil
	}

	return data, true, nil
}

// Put stores a payload under key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key string, data []byte) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO blobs (key, data, stored_at) VALUES (?, ?, ?)",
		key, data, c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
