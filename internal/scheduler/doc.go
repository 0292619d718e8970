// Package scheduler runs one-shot jobs at an absolute point in time.
// Jobs wait in a min-heap keyed by fire time that is drained by a single
// background loop; each due job then executes on its own goroutine, so a
// slow job never delays the others. Jobs live only in memory and are dropped
// when the scheduler stops.
package scheduler
