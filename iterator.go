package ssv

// Iterate returns a pull iterator yielding each stored string once,
// inline strings first, in insertion order. The returned function is
// a single-pass forward iterator: it is invalidated by any mutation
// of the underlying SSV made between calls.
func (s *SSV[I]) Iterate() func() ([]byte, bool) {
	i, n := 0, s.Len()

	return func() ([]byte, bool) {
		if i >= n {
			return nil, false
		}
		v := s.Index(i)
		i++
		return v, true
	}
}
