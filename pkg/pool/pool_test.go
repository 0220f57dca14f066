package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeOrdering(t *testing.T) {
	pl := NewPool(0)
	defer pl.TearDown()

	results := pl.Parallelize(100, func(i int) interface{} { return i * i })
	for i, r := range results {
		assert.Equal(t, i*i, r.(int))
	}
}

func TestParallelizeNilPool(t *testing.T) {
	var pl *Pool
	results := pl.Parallelize(10, func(i int) interface{} { return i })
	for i, r := range results {
		assert.Equal(t, i, r.(int))
	}
}
