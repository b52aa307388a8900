package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func descInts(a, b int) bool { return a > b }

func TestTopK_Split(t *testing.T) {
	head, rest := topK([]int{3, 9, 1, 7, 5}, 2, descInts)
	assert.Equal(t, []int{9, 7}, head)
	assert.Equal(t, []int{5, 3, 1}, rest)
}

func TestTopK_KCoversAll(t *testing.T) {
	head, rest := topK([]int{2, 1}, 5, descInts)
	assert.Equal(t, []int{2, 1}, head)
	assert.Nil(t, rest)
}

func TestTopK_Empty(t *testing.T) {
	head, rest := topK(nil, 3, descInts)
	assert.Empty(t, head)
	assert.Nil(t, rest)
}

func TestTopK_ZeroAndNegativeK(t *testing.T) {
	head, rest := topK([]int{1, 2}, 0, descInts)
	assert.Empty(t, head)
	assert.Len(t, rest, 2)

	head, rest = topK([]int{1, 2}, -1, descInts)
	assert.Empty(t, head)
	assert.Len(t, rest, 2)
}

func TestTopK_StableOnTies(t *testing.T) {
	type item struct {
		name  string
		count int
	}
	items := []item{{"a", 1}, {"b", 1}, {"c", 1}}
	head, rest := topK(items, 2, func(x, y item) bool { return x.count > y.count })
	assert.Equal(t, []item{{"a", 1}, {"b", 1}}, head)
	assert.Equal(t, []item{{"c", 1}}, rest)
}

func TestTopK_DoesNotMutateInput(t *testing.T) {
	in := []int{1, 3, 2}
	topK(in, 1, descInts)
	assert.Equal(t, []int{1, 3, 2}, in)
}
