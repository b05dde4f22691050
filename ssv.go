package ssv

import (
	"fmt"
	"math/bits"
)

const (
	// ptrSize is the width, in bytes, a heap pointer would occupy if it
	// were unioned onto the tail of the inline buffer. SSV keeps the
	// heap pointer as a separate, GC-tracked field instead (see
	// DESIGN.md), but still reserves this many trailing inline bytes
	// once spilled, so the eviction behaviour of a real overlap is
	// preserved exactly.
	ptrSize = 8

	// MaxInlineBytes is the largest inline width a *SSV[I] can be
	// constructed with. Go has no const-generic array lengths, so the
	// inline buffer is a fixed-size array, and narrower widths simply
	// use a prefix of it.
	MaxInlineBytes = 120
)

// SSV is a space-efficient, append-only container of immutable byte
// strings. The first few strings live in a fixed inline buffer held
// directly inside the value; once that overflows, every later string
// spills into a heap-allocated extension.
//
// I is the unsigned integer type backing the packed per-string length
// bitmap; narrower types hold fewer inline fields. The inline width is
// a per-instance construction parameter rather than a type parameter -
// see length.go and DESIGN.md.
//
// The zero value of SSV is not ready to use; construct one with New.
type SSV[I Length] struct {
	lengths    I
	heap       *heapvec
	width      int
	bits       int
	maxStrings int
	data       [MaxInlineBytes]byte
}

// New returns an SSV with the given inline width, optionally
// initialized with the given byte strings appended in order.
func New[I Length](width int, views ...[]byte) (*SSV[I], error) {
	if width < 1 || width > MaxInlineBytes {
		return nil, ErrAllocation
	}

	s := &SSV[I]{
		width:      width,
		bits:       fieldBits(width),
		maxStrings: 0,
	}
	s.maxStrings = (bitWidthOf[I]() - 1) / s.bits
	s.reset()

	for _, v := range views {
		if err := s.Append(v); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewDefault returns an empty SSV with the default inline width (120
// bytes).
func NewDefault[I Length]() *SSV[I] {
	s, _ := New[I](MaxInlineBytes)
	return s
}

// NewFromIterator appends every byte string next yields, in order,
// stopping at the first (nil, false).
func NewFromIterator[I Length](width int, next func() ([]byte, bool)) (*SSV[I], error) {
	s, err := New[I](width)
	if err != nil {
		return nil, err
	}

	for v, ok := next(); ok; v, ok = next() {
		if err := s.Append(v); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// reset returns the receiver to the empty, inline state, discarding
// any spill. Used by Clear, Take's source, and construction.
func (s *SSV[I]) reset() {
	s.heap = nil
	s.lengths = s.inplaceBit()

	if s.maxStrings > 0 {
		s.lengths |= s.fieldMask()
	}
}

// Append adds str as the new last string.
func (s *SSV[I]) Append(str []byte) error {
	if s.isInplace() {
		nfields, inlineBytes, lens := s.decodeLengths()

		if nfields < s.maxStrings && inlineBytes+len(str)+1 <= s.width {
			copy(s.data[inlineBytes:], str)
			s.data[inlineBytes+len(str)] = 0
			s.setField(nfields, len(str))
			return nil
		}

		return s.transition(nfields, lens, str)
	}

	return s.extendSpill(str)
}

// transition performs the one-time move from purely-inline to
// inline+spill storage, triggered by the first append that cannot fit
// inline. Inline strings that would overlap the reserved pointer-slot
// tail of the inline buffer are evicted to the new spill block; the
// rest stay inline.
func (s *SSV[I]) transition(nfields int, lens [maxFieldsCap]int, str []byte) error {
	var offs [maxFieldsCap]int

	cum := 0
	for i := 0; i < nfields; i++ {
		offs[i] = cum
		cum += lens[i] + 1
	}

	usableInline := s.width - ptrSize
	mustmove := nfields

	for i := 0; i < nfields; i++ {
		if offs[i]+lens[i]+1 > usableInline {
			mustmove = i
			break
		}
	}

	spaceNeeded := heapHeaderSize + len(str) + 1 + 8
	for i := mustmove; i < nfields; i++ {
		spaceNeeded += lens[i] + 1 + 8
	}
	if spaceNeeded < minHeapCapacity {
		spaceNeeded = minHeapCapacity
	}

	capacity := roundUpPow2(spaceNeeded)

	h := newHeapvec(capacity)
	if !h.isPow2Capacity() {
		return ErrAllocation
	}

	for i := mustmove; i < nfields; i++ {
		h.append(s.data[offs[i] : offs[i]+lens[i]])
	}
	h.append(str)

	s.heap = h
	s.setInplace(false)

	if mustmove < nfields {
		s.retireField(mustmove)
	}

	return nil
}

// extendSpill appends to an already-spilled SSV, growing the spill
// block first if there isn't room.
func (s *SSV[I]) extendSpill(str []byte) error {
	needed := len(str) + 1 + 8

	if needed > s.heap.usable() {
		newCapacity := int(s.heap.capacity()) * 2
		for newCapacity-heapHeaderSize-int(s.heap.payloadEnd())-8*s.heap.nstrings() < needed {
			newCapacity *= 2
		}
		nh := newHeapvec(newCapacity)
		if !nh.isPow2Capacity() {
			return ErrAllocation
		}

		n := s.heap.nstrings()
		for i := 0; i < n; i++ {
			nh.setOffset(i, s.heap.offset(i))
		}
		nh.setNStrings(n)

		copy(nh.buf[heapHeaderSize:], s.heap.buf[heapHeaderSize:heapHeaderSize+int(s.heap.payloadEnd())])

		s.heap = nh
	}

	s.heap.append(str)

	return nil
}

// roundUpPow2 returns the smallest power of two >= n.
func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// PopBack removes the last string. On an empty SSV it does nothing.
func (s *SSV[I]) PopBack() {
	if s.isInplace() {
		nfields, _, _ := s.decodeLengths()
		if nfields == 0 {
			return
		}
		s.retireField(nfields - 1)
		return
	}

	if n := s.heap.nstrings(); n > 0 {
		s.heap.setNStrings(n - 1)
		return
	}

	if nfields, _, _ := s.decodeLengths(); nfields > 0 {
		s.retireField(nfields - 1)
	}
}

// Resize truncates the SSV to the first n strings. Growth is not
// supported: n must not exceed the current length.
func (s *SSV[I]) Resize(n int) error {
	if n > s.Len() {
		return ErrOutOfRange
	}
	if n < 0 {
		return ErrOutOfRange
	}

	if s.isInplace() {
		nfields, _, _ := s.decodeLengths()
		if n < nfields {
			s.retireField(n)
		}
		return nil
	}

	nfields, _, _ := s.decodeLengths()

	if n >= nfields {
		s.heap.setNStrings(n - nfields)
		if s.heap.nstrings() == 0 {
			s.heap = nil
			s.setInplace(true)
		}
		return nil
	}

	s.heap = nil
	s.setInplace(true)
	s.retireField(n)

	return nil
}

// Clear empties the SSV, releasing any spill.
func (s *SSV[I]) Clear() {
	s.reset()
}

// Index returns string i. Undefined (and left unchecked) when i is
// beyond the current length; use At for a checked lookup.
func (s *SSV[I]) Index(i int) []byte {
	nfields, _, lens := s.decodeLengths()

	if i < nfields {
		off := 0
		for j := 0; j < i; j++ {
			off += lens[j] + 1
		}
		return s.data[off : off+lens[i]]
	}

	return s.heap.at(i - nfields)
}

// At returns string i, or ErrOutOfRange if i is beyond the current
// length.
func (s *SSV[I]) At(i int) ([]byte, error) {
	if i < 0 || i >= s.Len() {
		return nil, ErrOutOfRange
	}
	return s.Index(i), nil
}

// Front returns the first string. Undefined on an empty SSV.
func (s *SSV[I]) Front() []byte {
	return s.Index(0)
}

// Back returns the last string. Undefined on an empty SSV.
func (s *SSV[I]) Back() []byte {
	return s.Index(s.Len() - 1)
}

// Len returns the number of strings currently stored.
func (s *SSV[I]) Len() int {
	nfields, _, _ := s.decodeLengths()
	if s.isInplace() {
		return nfields
	}
	return nfields + s.heap.nstrings()
}

// FullSize returns the total number of payload bytes stored,
// including one separator NUL per string.
func (s *SSV[I]) FullSize() int {
	_, inlineBytes, _ := s.decodeLengths()
	if s.isInplace() {
		return inlineBytes
	}
	return inlineBytes + int(s.heap.payloadEnd())
}

// Empty reports whether the SSV currently holds no strings.
func (s *SSV[I]) Empty() bool {
	return s.Len() == 0
}

// IsInplace reports whether every string currently stored fits
// entirely inline.
func (s *SSV[I]) IsInplace() bool {
	return s.isInplace()
}

// IsOnHeap reports whether the SSV has spilled to a heap extension.
func (s *SSV[I]) IsOnHeap() bool {
	return !s.isInplace()
}

// BufSize returns the inline width this SSV was constructed with.
func (s *SSV[I]) BufSize() int {
	return s.width
}

// MaxStrings returns the maximum number of strings the inline bitmap
// can encode for this SSV's (width, I) configuration.
func (s *SSV[I]) MaxStrings() int {
	return s.maxStrings
}

// Reserve is accepted for API symmetry with a growable vector but is
// a no-op: the inline-first policy makes capacity reservation
// optional (see DESIGN.md).
func (s *SSV[I]) Reserve(n int) {}

// Clone returns a deep copy. Mutating the clone never affects the
// receiver, and vice versa.
func (s *SSV[I]) Clone() (*SSV[I], error) {
	c := *s

	if !s.isInplace() {
		buf := make([]byte, len(s.heap.buf))
		copy(buf, s.heap.buf)
		c.heap = &heapvec{buf: buf}
	}

	return &c, nil
}

// Take transfers ownership of the receiver's storage to a new SSV and
// resets the receiver to the empty state. The receiver remains valid
// to use (and to Append to again) after Take; it is simply emptied,
// the way a moved-from value must stay destructible.
func (s *SSV[I]) Take() *SSV[I] {
	out := new(SSV[I])
	*out = *s
	s.reset()
	return out
}

// String renders a short diagnostic summary.
func (s *SSV[I]) String() string {
	mode := "inplace"
	if !s.isInplace() {
		mode = "heap"
	}
	return fmt.Sprintf("<ssv|n=%d,full=%d,%s>", s.Len(), s.FullSize(), mode)
}
