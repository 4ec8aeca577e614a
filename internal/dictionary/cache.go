package dictionary

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultCacheTTL matches the Merriam-Webster guidance that cached
// entries should be refreshed regularly.
const DefaultCacheTTL = 30 * 24 * time.Hour

// LookupCache stores raw API responses in a SQLite database, keyed by
// (reference, word). Entries older than the TTL are treated as absent.
type LookupCache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenLookupCache opens (or creates) the cache database at path
func OpenLookupCache(path string, ttl time.Duration) (*LookupCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup cache: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS lookups (
		ref        text NOT NULL,
		word       text NOT NULL,
		response   blob NOT NULL,
		created_at integer NOT NULL,
		PRIMARY KEY (ref, word)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &LookupCache{db: db, ttl: ttl}, nil
}

// Get returns the cached response body for a (ref, word) pair, if fresh
func (c *LookupCache) Get(ref, word string) ([]byte, bool) {
	var body []byte
	var createdAt int64
	row := c.db.QueryRow(`SELECT response, created_at FROM lookups WHERE ref = ? AND word = ?`, ref, word)
	if err := row.Scan(&body, &createdAt); err != nil {
		return nil, false
	}

	if time.Since(time.Unix(createdAt, 0)) > c.ttl {
		return nil, false
	}

	return body, true
}

// Put stores a response body, replacing any previous entry
func (c *LookupCache) Put(ref, word string, body []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO lookups (ref, word, response, created_at) VALUES (?, ?, ?, ?)`,
		ref, word, body, time.Now().Unix(),
	)
	return err
}

// Prune deletes entries older than the TTL and returns how many were removed
func (c *LookupCache) Prune() (int64, error) {
	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.Exec(`DELETE FROM lookups WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the underlying database
func (c *LookupCache) Close() error {
	return c.db.Close()
}
