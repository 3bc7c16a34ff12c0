// Package cache implements the two-tier fingerprint cache for recognition
// results.
//
// # Tiers
//
// The memory tier is a bounded LRU whose entries expire a fixed TTL after
// they were stored. The disk tier keeps one "{key}.json" file per entry
// under the cache root. A lookup that misses memory but finds the file
// promotes the entry back into memory and refreshes the file's modification
// time, which is the clock the disk sweep evicts by.
//
// # Failure Policy
//
// The cache is an optimization. Disk read, parse and write failures are
// logged and otherwise ignored: a broken file reads as a miss and a failed
// write leaves only the memory copy.
//
// # Sweeping
//
// Sweep removes disk files older than a maximum age and then the oldest
// files beyond a maximum count. MaybeSweep runs a sweep when the configured
// interval has elapsed since the last one; callers that find a sweep already
// in progress skip it instead of waiting. Lookup and Store call MaybeSweep
// first, so no background goroutine is needed.
//
// Disk writes go to a temporary file that is renamed into place, so a
// reader never sees a partially written entry.
package cache
