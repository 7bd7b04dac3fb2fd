package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6}
	InPlaceFilter(&values, func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4, 6}, values)
}

func TestChunk(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}

	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunk(values, 2))
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, Chunk(values, 200))
	assert.Empty(t, Chunk([]int{}, 200))
}

func TestGetEnvironmentInt(t *testing.T) {
	env := map[string]string{"SIZE": "42", "BROKEN": "lots"}

	assert.Equal(t, 42, GetEnvironmentInt(env, "SIZE", 1))
	assert.Equal(t, 1, GetEnvironmentInt(env, "BROKEN", 1))
	assert.Equal(t, 7, GetEnvironmentInt(env, "MISSING", 7))
}
