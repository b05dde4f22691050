// Package ssv implements a space-efficient, append-only container of
// immutable byte strings ("short string vector").
//
// An SSV keeps its first few strings packed into a fixed-size inline
// buffer held directly inside the value, and spills everything past
// that point into a heap-allocated extension (a heapvec). Indexing and
// iteration stitch the two regions together transparently.
//
// Besides the inline buffer itself and its cached width parameters,
// each SSV carries two fields:
//
//   - lengths - a packed bitmap of per-string byte lengths, one bit of
//     which is stolen as the inline/spilled discriminator;
//   - heap    - nil while every string fits inline, otherwise a pointer
//     to the spill extension.
//
// Bitmap layout (I = uint64, the default):
//
//	[    1:63    ] [                 63:62-00                  ]
//	<D:inplace-bit> <F0|F1|...|Fn: bits-wide length fields, low-to-high>
//
// A field value equal to its all-ones sentinel (2^bits - 1) marks "no
// string here"; fields are contiguous non-sentinel values at the low
// end followed by sentinels, by invariant.
//
// Heapvec layout (a single growable byte buffer):
//
//	[ capacity:8 ] [ nstrings:8 ] [ payload --> ] ... [ <-- offsets ]
//
// Payload (each string followed by a trailing NUL) grows up from the
// header; the offset table - one uint64 end-offset per spilled string -
// grows down from the end of the allocation. The two meet in the
// middle when the block needs to grow, which it does by doubling.
//
// See DESIGN.md for the rationale behind the heap pointer being a
// real, GC-tracked Go pointer rather than a union aliased onto the
// inline buffer's tail bytes.
package ssv
