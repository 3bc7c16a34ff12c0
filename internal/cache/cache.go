package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/singleflight"
)

const fileSuffix = ".json"

// Options configures a Cache.
type Options struct {
	// Dir is the cache root shared by the disk tier and image blobs.
	Dir string

	// MaxEntries bounds the memory tier.
	MaxEntries int

	// TTL is how long a memory entry stays valid after it was stored.
	TTL time.Duration

	// SweepInterval is the minimum time between two MaybeSweep runs.
	SweepInterval time.Duration

	MaxAgeDays int
	MaxFiles   int

	// SingleFlight collapses concurrent Load calls for the same key into one
	// computation.
	SingleFlight bool

	// Now overrides the clock used for sweeping. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the stock settings rooted at dir.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:           dir,
		MaxEntries:    2000,
		TTL:           time.Hour,
		SweepInterval: time.Hour,
		MaxAgeDays:    7,
		MaxFiles:      1000,
		SingleFlight:  true,
	}
}

// Stats counts cache traffic since construction.
type Stats struct {
	MemoryHits uint64 `json:"memoryHits"`
	DiskHits   uint64 `json:"diskHits"`
	Misses     uint64 `json:"misses"`
	Stores     uint64 `json:"stores"`
	Swept      uint64 `json:"swept"`
	Entries    int    `json:"entries"`
}

// Cache is a two-tier cache of JSON-serializable values keyed by fingerprint.
// Values handed to Store must not be modified afterwards.
type Cache[V any] struct {
	opts Options
	mem  *expirable.LRU[string, V]
	sf   singleflight.Group
	now  func() time.Time

	// remove deletes swept files; tests replace it.
	remove func(string) error

	sweepMu   sync.Mutex
	lastSweep time.Time

	memoryHits atomic.Uint64
	diskHits   atomic.Uint64
	misses     atomic.Uint64
	stores     atomic.Uint64
	swept      atomic.Uint64
}

// New creates the cache root if needed and returns an empty cache.
func New[V any](opts Options) (*Cache[V], error) {
	if opts.Dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create cache directory %s", opts.Dir)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Cache[V]{
		opts:      opts,
		mem:       expirable.NewLRU[string, V](opts.MaxEntries, nil, opts.TTL),
		now:       now,
		remove:    os.Remove,
		lastSweep: now(),
	}, nil
}

// Dir returns the cache root.
func (c *Cache[V]) Dir() string {
	return c.opts.Dir
}

// Lookup returns the value stored under key, consulting memory then disk.
func (c *Cache[V]) Lookup(key string) (V, bool) {
	c.MaybeSweep()

	if v, ok := c.mem.Get(key); ok {
		c.memoryHits.Add(1)
		return v, true
	}

	v, ok := c.readDisk(key)
	if !ok {
		c.misses.Add(1)
		return v, false
	}

	c.diskHits.Add(1)
	c.mem.Add(key, v)
	return v, true
}

// Store writes v through to both tiers.
func (c *Cache[V]) Store(key string, v V) {
	c.MaybeSweep()

	c.stores.Add(1)
	c.mem.Add(key, v)
	if err := c.writeDisk(key, v); err != nil {
		logx.Errorf("cache: %v", err)
	}
}

// Load returns the cached value for key, or computes it with fn and stores
// the result. hit reports whether the value came from the cache. Errors from
// fn are returned as is and nothing is stored.
func (c *Cache[V]) Load(key string, fn func() (V, error)) (v V, hit bool, err error) {
	if v, ok := c.Lookup(key); ok {
		return v, true, nil
	}

	compute := func() (V, error) {
		v, err := fn()
		if err != nil {
			return v, err
		}
		c.Store(key, v)
		return v, nil
	}

	if !c.opts.SingleFlight {
		v, err = compute()
		return v, false, err
	}

	res, err, _ := c.sf.Do(key, func() (any, error) {
		return compute()
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

// Forget drops the memory entry for key. The disk file is kept.
func (c *Cache[V]) Forget(key string) {
	c.mem.Remove(key)
}

// Purge empties the memory tier.
func (c *Cache[V]) Purge() {
	c.mem.Purge()
}

// Stats returns a snapshot of the traffic counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		MemoryHits: c.memoryHits.Load(),
		DiskHits:   c.diskHits.Load(),
		Misses:     c.misses.Load(),
		Stores:     c.stores.Load(),
		Swept:      c.swept.Load(),
		Entries:    c.mem.Len(),
	}
}

func (c *Cache[V]) path(key string) string {
	return filepath.Join(c.opts.Dir, key+fileSuffix)
}

func (c *Cache[V]) readDisk(key string) (V, bool) {
	var v V

	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logx.Errorf("cache: failed to read %s: %v", path, err)
		}
		return v, false
	}

	if err := json.Unmarshal(data, &v); err != nil {
		logx.Errorf("cache: failed to parse %s: %v", path, err)
		var zero V
		return zero, false
	}

	now := c.now()
	if err := os.Chtimes(path, now, now); err != nil {
		logx.Errorf("cache: failed to touch %s: %v", path, err)
	}
	return v, true
}

func (c *Cache[V]) writeDisk(key string, v V) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode entry %s", key)
	}

	tmp, err := os.CreateTemp(c.opts.Dir, TempPattern(key))
	if err != nil {
		return errors.Wrap(err, "failed to create temp cache file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to write entry %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to write entry %s", key)
	}
	if err := os.Rename(tmpPath, c.path(key)); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to commit entry %s", key)
	}
	return nil
}

// TempSuffix ends the name of every file still being written into the cache
// root. Committed entries and blobs never carry it.
const TempSuffix = ".tmp"

// TempPattern is the os.CreateTemp pattern for a file being written for key.
func TempPattern(key string) string {
	return key + ".*" + TempSuffix
}

func isTempFile(name string) bool {
	return strings.HasSuffix(name, TempSuffix)
}
