package ids

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGeneratorFormat(t *testing.T) {
	g := &RandomGenerator{now: func() time.Time { return time.UnixMilli(1700000000123) }}

	id := g.Next(PrefixToast)

	parts := strings.Split(id, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "toast", parts[0])
	assert.Equal(t, "1700000000123", parts[1])
	assert.Len(t, parts[2], 9)
}

func TestRandomGeneratorUnique(t *testing.T) {
	g := NewRandom()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := g.Next(PrefixModal)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequenceGeneratorPerPrefix(t *testing.T) {
	g := NewSequence()

	assert.Equal(t, "toast-1", g.Next(PrefixToast))
	assert.Equal(t, "toast-2", g.Next(PrefixToast))
	assert.Equal(t, "modal-1", g.Next(PrefixModal))
}
