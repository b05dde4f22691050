package ssv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldBits(t *testing.T) {
	t.Parallel()

	for _, tcase := range []struct{ width, wantBits int }{
		{40, 6}, {44, 6}, {48, 6}, {52, 6}, {56, 6}, {60, 6}, {120, 7},
	} {
		got := fieldBits(tcase.width)
		assert.Equal(t, tcase.wantBits, got, tcase.width)
		assert.Greater(t, (1<<got)-1, tcase.width)
		assert.LessOrEqual(t, (1<<(got-1))-1, tcase.width)
	}
}

func TestDecodeSetRetireRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := New[uint64](120)
	require.NoError(t, err)

	s.setField(0, 5)
	s.setField(1, 0)
	s.setField(2, 119-5)

	nfields, inlineBytes, lens := s.decodeLengths()
	assert.Equal(t, 3, nfields)
	assert.Equal(t, 5+1+0+1+(119-5)+1, inlineBytes)
	assert.Equal(t, 5, lens[0])
	assert.Equal(t, 0, lens[1])
	assert.Equal(t, 119-5, lens[2])

	s.retireField(1)
	nfields2, inlineBytes2, _ := s.decodeLengths()
	assert.Equal(t, 1, nfields2)
	assert.Equal(t, 5+1, inlineBytes2)
}

func TestInplaceBitIndependentOfFields(t *testing.T) {
	t.Parallel()

	s, err := New[uint64](120)
	require.NoError(t, err)
	assert.True(t, s.isInplace())

	s.setField(0, 3)
	assert.True(t, s.isInplace())

	s.setInplace(false)
	assert.False(t, s.isInplace())

	nfields, _, lens := s.decodeLengths()
	assert.Equal(t, 1, nfields)
	assert.Equal(t, 3, lens[0])
}

func TestFreshSSVHasNoFields(t *testing.T) {
	t.Parallel()

	s, err := New[uint16](44)
	require.NoError(t, err)

	nfields, inlineBytes, _ := s.decodeLengths()
	assert.Equal(t, 0, nfields)
	assert.Equal(t, 0, inlineBytes)
	assert.True(t, s.isInplace())
}
