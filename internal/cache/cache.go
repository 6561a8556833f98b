package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/genricoloni/presenced/internal/domain"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// FileName is the cache database inside the cache directory
const FileName = "album_cache.db"

var bucketCovers = []byte("covers")

// ArtworkCache stores resolved cover URLs keyed by album.
// Entries never expire. When the database cannot be opened the cache
// degrades to memory-only mode instead of failing.
type ArtworkCache struct {
	logger *zap.Logger
	db     *bolt.DB
	path   string

	mu  sync.RWMutex
	mem map[domain.AlbumKey]string
}

// Open loads the cache from dir, creating it when missing.
// A corrupt file is moved aside and a fresh one is created.
func Open(logger *zap.Logger, dir string) *ArtworkCache {
	c := &ArtworkCache{
		logger: logger,
		mem:    make(map[domain.AlbumKey]string),
	}
	if dir == "" {
		logger.Warn("No cache directory, artwork cache is memory-only")
		return c
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("Could not create cache directory, artwork cache is memory-only",
			zap.String("dir", dir), zap.Error(err))
		return c
	}

	c.path = filepath.Join(dir, FileName)
	db, err := openDB(c.path)
	if err != nil && !errors.Is(err, bolt.ErrTimeout) {
		aside := c.path + ".corrupt"
		logger.Warn("Cache file unreadable, starting empty",
			zap.String("path", c.path), zap.String("movedTo", aside), zap.Error(err))
		if rerr := os.Rename(c.path, aside); rerr == nil {
			db, err = openDB(c.path)
		}
	}
	if err != nil {
		logger.Warn("Could not open cache file, artwork cache is memory-only",
			zap.String("path", c.path), zap.Error(err))
		return c
	}

	c.db = db
	logger.Info("Cache loaded from file", zap.String("path", c.path), zap.Int("entries", c.Len()))
	return c
}

func openDB(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCovers)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return db, nil
}

// Path returns the database location, or "" in memory-only mode
func (c *ArtworkCache) Path() string {
	if c.db == nil {
		return ""
	}
	return c.path
}

// Get returns the cached cover URL for key
func (c *ArtworkCache) Get(key domain.AlbumKey) (string, bool) {
	c.mu.RLock()
	url, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		return url, true
	}
	if c.db == nil {
		return "", false
	}

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCovers)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			url = string(v)
			ok = true
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("Cache read failed", zap.String("album", string(key)), zap.Error(err))
		return "", false
	}
	if ok {
		c.mu.Lock()
		c.mem[key] = url
		c.mu.Unlock()
	}
	return url, ok
}

// Put stores url under key. The write is committed (and fsynced) before returning.
func (c *ArtworkCache) Put(key domain.AlbumKey, url string) error {
	c.mu.Lock()
	c.mem[key] = url
	c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCovers).Put([]byte(key), []byte(url))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Len returns the number of persisted entries (memory entries in memory-only mode)
func (c *ArtworkCache) Len() int {
	if c.db == nil {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return len(c.mem)
	}
	n := 0
	_ = c.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketCovers); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n
}

// Close releases the database file
func (c *ArtworkCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
