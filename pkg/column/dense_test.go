package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseZeroValue(t *testing.T) {
	var d Dense[string]

	assert.Equal(t, 0, d.Len())
	_, ok := d.At(0)
	assert.False(t, ok)
	assert.Nil(t, d.Values())
}

func TestDenseAppend(t *testing.T) {
	d := NewDense[int]()
	d = d.Append(10)
	d = d.Append(20)
	d = d.Append(30)

	require.Equal(t, 3, d.Len())
	v, ok := d.At(1)
	require.True(t, ok)
	assert.Equal(t, 20, v)
	assert.Equal(t, []int{10, 20, 30}, d.Values())
}

func TestDenseAppendLeavesParentUnchanged(t *testing.T) {
	parent := NewDense[int]().Append(1)

	childA := parent.Append(2)
	childB := parent.Append(3)

	assert.Equal(t, []int{1}, parent.Values())
	assert.Equal(t, []int{1, 2}, childA.Values())
	assert.Equal(t, []int{1, 3}, childB.Values())
}

func TestDenseSet(t *testing.T) {
	d := DenseOf([]string{"a", "b", "c"})

	updated, ok := d.Set(1, "B")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "B", "c"}, updated.Values())
	assert.Equal(t, []string{"a", "b", "c"}, d.Values(), "receiver must stay unchanged")
}

func TestDenseSetOutOfRange(t *testing.T) {
	d := DenseOf([]int{1})

	for _, i := range []int{-1, 1, 99} {
		updated, ok := d.Set(i, 42)
		assert.False(t, ok)
		assert.Equal(t, []int{1}, updated.Values())
	}
}

func TestDenseOfCopiesInput(t *testing.T) {
	src := []int{1, 2}
	d := DenseOf(src)
	src[0] = 99

	v, ok := d.At(0)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}
