package cache

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
)

// SweepReport summarizes one sweep of the disk tier.
type SweepReport struct {
	Expired   int `json:"expired"`
	Trimmed   int `json:"trimmed"`
	Orphaned  int `json:"orphaned"`
	Remaining int `json:"remaining"`
}

// Temp files older than this were left behind by an interrupted write.
const staleTempAge = time.Hour

// Sweep evicts disk files in two phases: first every file last modified more
// than maxAgeDays ago, then, while more than maxFiles remain, the oldest
// ones. Temp files are left to their writers unless they are stale. It
// waits for a sweep already in progress.
func (c *Cache[V]) Sweep(maxAgeDays, maxFiles int) (SweepReport, error) {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()
	return c.sweep(maxAgeDays, maxFiles)
}

// MaybeSweep runs a sweep with the configured limits when the sweep interval
// has elapsed. It returns immediately, without sweeping, when another caller
// holds the sweep.
func (c *Cache[V]) MaybeSweep() bool {
	if !c.sweepMu.TryLock() {
		return false
	}
	defer c.sweepMu.Unlock()

	if c.now().Sub(c.lastSweep) <= c.opts.SweepInterval {
		return false
	}
	if _, err := c.sweep(c.opts.MaxAgeDays, c.opts.MaxFiles); err != nil {
		logx.Errorf("cache: %v", err)
	}
	return true
}

type diskFile struct {
	path    string
	modTime time.Time
}

// sweep must be called with sweepMu held.
func (c *Cache[V]) sweep(maxAgeDays, maxFiles int) (SweepReport, error) {
	var report SweepReport

	now := c.now()
	c.lastSweep = now

	entries, err := os.ReadDir(c.opts.Dir)
	if err != nil {
		return report, errors.Wrapf(err, "failed to list cache directory %s", c.opts.Dir)
	}

	maxAge := time.Duration(maxAgeDays) * 24 * time.Hour
	remaining := make([]diskFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		f := diskFile{path: filepath.Join(c.opts.Dir, entry.Name()), modTime: info.ModTime()}
		if isTempFile(entry.Name()) {
			if now.Sub(f.modTime) > staleTempAge {
				if err := c.remove(f.path); err != nil {
					logx.Errorf("cache: failed to remove stale temp file %s: %v", f.path, err)
					continue
				}
				report.Orphaned++
			}
			continue
		}
		if now.Sub(f.modTime) > maxAge {
			if err := c.remove(f.path); err != nil {
				logx.Errorf("cache: failed to remove expired file %s: %v", f.path, err)
				remaining = append(remaining, f)
				continue
			}
			report.Expired++
			continue
		}
		remaining = append(remaining, f)
	}

	if maxFiles >= 0 && len(remaining) > maxFiles {
		sort.Slice(remaining, func(i, j int) bool {
			return remaining[i].modTime.Before(remaining[j].modTime)
		})
		excess := len(remaining) - maxFiles
		kept := remaining[excess:]
		for _, f := range remaining[:excess] {
			if err := c.remove(f.path); err != nil {
				logx.Errorf("cache: failed to remove file %s: %v", f.path, err)
				kept = append(kept, f)
				continue
			}
			report.Trimmed++
		}
		remaining = kept
	}

	report.Remaining = len(remaining)
	removed := report.Expired + report.Trimmed + report.Orphaned
	c.swept.Add(uint64(removed))
	if removed > 0 {
		logx.Infof("cache sweep: %d expired, %d trimmed, %d orphaned, %d remaining",
			report.Expired, report.Trimmed, report.Orphaned, report.Remaining)
	}
	return report, nil
}
