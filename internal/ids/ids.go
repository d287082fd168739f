// Package ids generates identifiers for toasts and modals.
package ids

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Prefixes used by the toolkit.
const (
	PrefixToast = "toast"
	PrefixModal = "modal"
)

// Generator produces unique string tokens.
type Generator interface {
	// Next returns a new identifier starting with prefix.
	Next(prefix string) string
}

// RandomGenerator builds identifiers of the form prefix-<unixmilli>-<random>.
type RandomGenerator struct {
	now func() time.Time
}

// NewRandom returns a generator backed by the wall clock and google/uuid.
func NewRandom() *RandomGenerator {
	return &RandomGenerator{now: time.Now}
}

// Next returns a new identifier.
func (g *RandomGenerator) Next(prefix string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", prefix, g.now().UnixMilli(), random)
}

// SequenceGenerator returns prefix-1, prefix-2, ... Useful in tests and
// anywhere identifiers must be predictable.
type SequenceGenerator struct {
	mu   sync.Mutex
	next map[string]int
}

// NewSequence returns an empty sequence generator.
func NewSequence() *SequenceGenerator {
	return &SequenceGenerator{next: make(map[string]int)}
}

// Next returns the next identifier for prefix.
func (g *SequenceGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.next[prefix])
}
