package ssv

import "encoding/binary"

// heapHeaderSize is the size, in bytes, of a heapvec's fixed header
// (capacity, nstrings), both stored as little-endian uint64s.
const heapHeaderSize = 16

// minHeapCapacity is the smallest block a transition ever allocates.
const minHeapCapacity = 128

// heapvec is a single contiguous, over-allocated block: a fixed
// header, payload bytes (each string followed by a trailing NUL)
// growing up from the header, and a reverse-indexed offset table -
// one uint64 end-offset per string - growing down from the end of the
// block. The two halves meet in the middle when the block must grow.
//
// heapvec cannot reallocate itself: Append's precondition (enough
// room for the incoming string) is the enclosing SSV's job to uphold.
// This mirrors keeping heapvec a pure, independently-testable layout
// primitive rather than folding allocator knowledge into it.
type heapvec struct {
	buf []byte
}

// newHeapvec allocates a zeroed block of the given capacity, which
// must be a power of two (callers round up before calling this).
func newHeapvec(capacity int) *heapvec {
	h := &heapvec{buf: make([]byte, capacity)}
	h.setCapacity(uint64(capacity))
	h.setNStrings(0)
	return h
}

// isPow2Capacity reports whether the block's declared capacity is a
// power of two, the way the growth policy requires so the
// reverse-indexed offset table stays 8-byte aligned.
func (h *heapvec) isPow2Capacity() bool {
	v := h.capacity()
	return v != 0 && v&(v-1) == 0
}

func (h *heapvec) capacity() uint64 {
	return binary.LittleEndian.Uint64(h.buf[0:8])
}

func (h *heapvec) setCapacity(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[0:8], v)
}

func (h *heapvec) nstrings() int {
	return int(binary.LittleEndian.Uint64(h.buf[8:16]))
}

func (h *heapvec) setNStrings(v int) {
	binary.LittleEndian.PutUint64(h.buf[8:16], uint64(v))
}

// offset returns offsets[idx]: the byte offset, within the payload,
// immediately past the end of the idx-th spilled string (including
// its trailing NUL). String 0 starts at offset 0.
func (h *heapvec) offset(idx int) uint64 {
	pos := len(h.buf) - 8*(idx+1)
	return binary.LittleEndian.Uint64(h.buf[pos : pos+8])
}

func (h *heapvec) setOffset(idx int, v uint64) {
	pos := len(h.buf) - 8*(idx+1)
	binary.LittleEndian.PutUint64(h.buf[pos:pos+8], v)
}

// payloadEnd is the number of payload bytes currently in use.
func (h *heapvec) payloadEnd() uint64 {
	n := h.nstrings()
	if n == 0 {
		return 0
	}
	return h.offset(n - 1)
}

// usable reports how many free bytes remain between the payload and
// the offset table.
func (h *heapvec) usable() int {
	n := h.nstrings()
	return len(h.buf) - heapHeaderSize - int(h.payloadEnd()) - 8*n
}

// append copies s into the payload, terminates it with a NUL, and
// records its end offset. The caller must have already verified
// there is room (see usable).
func (h *heapvec) append(s []byte) {
	off := h.payloadEnd()
	dst := h.buf[heapHeaderSize+int(off):]

	n := copy(dst, s)
	dst[n] = 0

	idx := h.nstrings()
	h.setOffset(idx, off+uint64(len(s))+1)
	h.setNStrings(idx + 1)
}

// at returns string idx's bytes, excluding its trailing NUL.
func (h *heapvec) at(idx int) []byte {
	var start uint64
	if idx > 0 {
		start = h.offset(idx - 1)
	}
	end := h.offset(idx)

	return h.buf[heapHeaderSize+int(start) : heapHeaderSize+int(end)-1]
}
