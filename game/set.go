package game

import (
	"math/bits"
	"unsafe"
)

// Set is a bit-indexed vertex set over the graph's dense vertex indices.
// The solver publishes one Set per time step; a published Set is never
// mutated again, so rows may be shared read-only (table, strategy, caller).
type Set struct {
	words []uint64
	n     int
}

// NewSet returns an empty set sized for n vertices.
func NewSet(n int) *Set {
	return &Set{words: make([]uint64, (n+63)/64), n: n}
}

// Len returns the universe size (number of vertices), not the cardinality.
func (s *Set) Len() int { return s.n }

// Has reports whether dense index i is a member.
func (s *Set) Has(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Add inserts dense index i.
func (s *Set) Add(i int) { s.words[i>>6] |= 1 << (uint(i) & 63) }

// Remove deletes dense index i.
func (s *Set) Remove(i int) { s.words[i>>6] &^= 1 << (uint(i) & 63) }

// Count returns the cardinality.
func (s *Set) Count() int {
	c := 0
	for _, w := range s.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Equal reports whether both sets hold exactly the same members.
func (s *Set) Equal(o *Set) bool {
	if s.n != o.n {
		return false
	}
	for i, w := range s.words {
		if w != o.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	out := &Set{words: make([]uint64, len(s.words)), n: s.n}
	copy(out.words, s.words)
	return out
}

// Members returns the dense indices in ascending order.
func (s *Set) Members() []int {
	out := make([]int, 0, s.Count())
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi<<6+b)
			w &= w - 1
		}
	}
	return out
}

// Key returns the raw bit words as a string, suitable as an exact map key.
// Two sets over the same universe have equal keys iff they are Equal.
func (s *Set) Key() string {
	if len(s.words) == 0 {
		return ""
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s.words[0])), len(s.words)*8)
	return string(b)
}

// copyFrom overwrites s with o. Both must share the same universe size.
func (s *Set) copyFrom(o *Set) { copy(s.words, o.words) }

// or unions o into s in place.
func (s *Set) or(o *Set) {
	for i, w := range o.words {
		s.words[i] |= w
	}
}
