package ssv

import "github.com/zeebo/errs"

// ErrAllocation is returned when New is given an inline width outside
// 1..MaxInlineBytes, or when a newly allocated spill block's capacity
// is not a power of two.
var ErrAllocation = errs.New("ssv: allocation failed")

// ErrOutOfRange is returned by At and Resize when the requested index
// or length is beyond the current size.
var ErrOutOfRange = errs.New("ssv: index out of range")
