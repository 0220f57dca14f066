package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDSliceSorts(t *testing.T) {
	ids := NewIDSlice([]ID{"bob", "alice"})
	assert.True(t, ids.Valid())
	assert.Equal(t, IDSlice{"alice", "bob"}, ids)
}

func TestIDSliceValid(t *testing.T) {
	assert.False(t, IDSlice{"alice", "alice"}.Valid())
	assert.False(t, IDSlice{"bob", "alice"}.Valid())
	assert.False(t, IDSlice{""}.Valid())
	assert.True(t, IDSlice{"alice", "bob"}.Valid())
}

func TestIDSliceContainsRemove(t *testing.T) {
	ids := NewIDSlice([]ID{"alice", "bob"})
	assert.True(t, ids.Contains("alice", "bob"))
	assert.False(t, ids.Contains("charlie"))

	others := ids.Remove("alice")
	assert.Equal(t, IDSlice{"bob"}, others)
	// the original is untouched
	assert.True(t, ids.Contains("alice"))
}
