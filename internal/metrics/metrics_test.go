package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInc(t *testing.T) {
	before := Reloads.Value()
	Inc(Reloads)
	assert.Equal(t, before+1, Reloads.Value())
}

func TestSnapshot_ContainsAllCounters(t *testing.T) {
	Inc(NotFound)
	snap := Snapshot()
	assert.Len(t, snap, 8)
	assert.GreaterOrEqual(t, snap["not_found"], int64(1))
}
