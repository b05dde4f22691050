package ssv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapvecAppendAndAt(t *testing.T) {
	t.Parallel()

	h := newHeapvec(128)
	require.True(t, h.isPow2Capacity())

	h.append([]byte("hello"))
	h.append([]byte("world"))

	assert.Equal(t, 2, h.nstrings())
	assert.Equal(t, []byte("hello"), h.at(0))
	assert.Equal(t, []byte("world"), h.at(1))
	assert.Equal(t, uint64(12), h.payloadEnd())
}

func TestHeapvecUsableShrinksOnAppend(t *testing.T) {
	t.Parallel()

	h := newHeapvec(128)
	before := h.usable()

	h.append([]byte("abc"))

	// payload grows by len + 1 NUL; the offset table grows by 8 bytes.
	assert.Equal(t, before-len("abc")-1-8, h.usable())
}

func TestHeapvecEmptyAtZero(t *testing.T) {
	t.Parallel()

	h := newHeapvec(128)
	assert.Equal(t, uint64(0), h.payloadEnd())
	assert.Equal(t, 0, h.nstrings())

	h.append(nil)
	assert.Equal(t, 1, h.nstrings())
	assert.Equal(t, []byte{}, h.at(0))
}

func TestIsPow2Capacity(t *testing.T) {
	t.Parallel()

	for _, cap := range []int{128, 256, 4096} {
		h := newHeapvec(cap)
		assert.True(t, h.isPow2Capacity(), cap)
	}

	h := newHeapvec(128)
	h.setCapacity(100)
	assert.False(t, h.isPow2Capacity())
}
