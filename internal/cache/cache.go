package cache

import (
	"context"
	"fmt"
	"sync"

	"mclang-tool/internal/textutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// RewriteCache stores accepted AI rewrites so repeated values and repeat runs
// against the same file skip the model. Entries are keyed by a hash of
// source text, model, and target age. The cache is in-memory, with an
// optional PostgreSQL table behind it when a pool is supplied.
type RewriteCache struct {
	pool   *pgxpool.Pool
	mu     sync.RWMutex
	memory map[string]string // hash → rewritten text
}

// NewRewriteCache creates a cache. pool may be nil for memory-only operation.
func NewRewriteCache(pool *pgxpool.Pool) *RewriteCache {
	return &RewriteCache{
		pool:   pool,
		memory: make(map[string]string),
	}
}

// EnsureSchema creates the backing table. No-op without a pool.
func (c *RewriteCache) EnsureSchema(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}
	_, err := c.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS rewrite_cache (
			hash TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			rewritten TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure rewrite_cache schema: %w", err)
	}
	return nil
}

// Get retrieves a cached rewrite. Returns false if not found.
func (c *RewriteCache) Get(ctx context.Context, sourceKey string) (string, bool) {
	hash := textutil.Hash(sourceKey)

	c.mu.RLock()
	if v, ok := c.memory[hash]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	if c.pool == nil {
		return "", false
	}

	var rewritten string
	err := c.pool.QueryRow(ctx,
		`SELECT rewritten FROM rewrite_cache WHERE hash = $1`, hash).Scan(&rewritten)
	if err != nil {
		return "", false
	}

	c.mu.Lock()
	c.memory[hash] = rewritten
	c.mu.Unlock()

	return rewritten, true
}

// Set stores a rewrite in memory and, when available, PostgreSQL.
func (c *RewriteCache) Set(ctx context.Context, sourceKey, rewritten string) error {
	hash := textutil.Hash(sourceKey)

	c.mu.Lock()
	c.memory[hash] = rewritten
	c.mu.Unlock()

	if c.pool == nil {
		return nil
	}

	_, err := c.pool.Exec(ctx, `
		INSERT INTO rewrite_cache (hash, source, rewritten)
		VALUES ($1, $2, $3)
		ON CONFLICT (hash) DO UPDATE SET rewritten = EXCLUDED.rewritten`,
		hash, sourceKey, rewritten)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Preload loads all cached rewrites into memory. No-op without a pool.
func (c *RewriteCache) Preload(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}

	rows, err := c.pool.Query(ctx, `SELECT hash, rewritten FROM rewrite_cache`)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var hash, rewritten string
		if err := rows.Scan(&hash, &rewritten); err != nil {
			return fmt.Errorf("scan cache row: %w", err)
		}
		c.memory[hash] = rewritten
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate cache rows: %w", err)
	}

	log.Info().Int("count", count).Msg("Preloaded rewrite cache")
	return nil
}
