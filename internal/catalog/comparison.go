package catalog

import (
	"slices"
	"sync"
)

// MaxCompared is the number of languages shown side by side.
const MaxCompared = 2

// Comparison is the process-wide set of languages picked for comparison. It
// holds at most MaxCompared distinct identifiers; adding to a full set
// evicts the oldest entry. It is safe for concurrent use and is meant to be
// shared by every consumer rather than copied.
type Comparison struct {
	mu  sync.RWMutex
	ids []string
}

// NewComparison creates an empty comparison set.
func NewComparison() *Comparison {
	return &Comparison{ids: make([]string, 0, MaxCompared+1)}
}

// Add appends id unless already present. The identifier is percent-decoded
// once first, so "Brainf%2A%2A%2A" and "Brainf***" are the same entry.
// Empty identifiers are ignored. Returns true if the set changed.
func (c *Comparison) Add(id string) bool {
	id = DecodeIdentifier(id)
	if id == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.ids, id) {
		return false
	}
	c.ids = append(c.ids, id)
	for len(c.ids) > MaxCompared {
		c.ids = slices.Delete(c.ids, 0, 1)
	}
	return true
}

// Remove drops id if present. Returns true if the set changed.
func (c *Comparison) Remove(id string) bool {
	id = DecodeIdentifier(id)

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.Index(c.ids, id)
	if i < 0 {
		return false
	}
	c.ids = slices.Delete(c.ids, i, i+1)
	return true
}

// Contains reports whether id is selected.
func (c *Comparison) Contains(id string) bool {
	id = DecodeIdentifier(id)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Contains(c.ids, id)
}

// IDs returns the selected identifiers, oldest first.
func (c *Comparison) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.ids)
}

// Len returns the number of selected identifiers.
func (c *Comparison) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

// Ready reports whether the comparison view can be shown.
func (c *Comparison) Ready() bool {
	return c.Len() == MaxCompared
}

// Prompt returns the text to show instead of the comparison view, or ""
// when the set is full.
func (c *Comparison) Prompt() string {
	if c.Ready() {
		return ""
	}
	return ErrNeedTwo.Error()
}
