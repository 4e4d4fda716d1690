// Package filelist holds the ordered set of documents queued for merging.
package filelist

import (
	"go.uber.org/zap"
)

// Controller owns the ordered sequence of input paths.
// Insertion order is merge order. Duplicates are kept as distinct entries.
// Operations on an index outside the list are no-ops.
type Controller struct {
	entries []string    // Queued paths in merge order.
	logger  *zap.Logger // Logger for mutation tracing.
}

// New creates an empty Controller. A nil logger disables logging.
func New(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		entries: []string{},
		logger:  logger,
	}
}

// Add appends paths to the end of the list, preserving their order.
func (c *Controller) Add(paths ...string) {
	c.entries = append(c.entries, paths...)
	c.logger.Debug("Added files", zap.Strings("paths", paths), zap.Int("total", len(c.entries)))
}

// RemoveAt removes the entry at index. Out-of-range indices are ignored.
func (c *Controller) RemoveAt(index int) {
	if !c.inRange(index) {
		c.logger.Debug("Ignoring remove of out-of-range index", zap.Int("index", index), zap.Int("total", len(c.entries)))
		return
	}
	removed := c.entries[index]
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	c.logger.Debug("Removed file", zap.Int("index", index), zap.String("path", removed))
}

// MoveUp swaps the entry at index with its predecessor and returns the
// entry's new index. On a no-op it returns index unchanged.
func (c *Controller) MoveUp(index int) int {
	if index <= 0 || !c.inRange(index) {
		return index
	}
	c.swap(index, index-1)
	return index - 1
}

// MoveDown swaps the entry at index with its successor and returns the
// entry's new index. On a no-op it returns index unchanged.
func (c *Controller) MoveDown(index int) int {
	if !c.inRange(index) || index == len(c.entries)-1 {
		return index
	}
	c.swap(index, index+1)
	return index + 1
}

// Snapshot returns a copy of the current ordering.
// Later mutations of the Controller do not affect the returned slice.
func (c *Controller) Snapshot() []string {
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of queued entries.
func (c *Controller) Len() int {
	return len(c.entries)
}

// At returns the entry at index and whether index was valid.
func (c *Controller) At(index int) (string, bool) {
	if !c.inRange(index) {
		return "", false
	}
	return c.entries[index], true
}

func (c *Controller) inRange(index int) bool {
	return index >= 0 && index < len(c.entries)
}

func (c *Controller) swap(i, j int) {
	c.entries[i], c.entries[j] = c.entries[j], c.entries[i]
	c.logger.Debug("Moved file", zap.Int("from", i), zap.Int("to", j), zap.String("path", c.entries[j]))
}
