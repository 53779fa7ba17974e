package abnf

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CharRange is an immutable set of code points used to build the character
// classes matched by Chars rules. Set operations always return a new range.
type CharRange struct {
	set map[rune]struct{}
}

// NewCharRange builds a range containing every rune in chars.
func NewCharRange(chars string) *CharRange {
	set := make(map[rune]struct{}, len(chars))
	for _, c := range chars {
		set[c] = struct{}{}
	}
	return &CharRange{set: set}
}

// NewCharSpan builds a range containing every rune between lo and hi,
// inclusive.
func NewCharSpan(lo, hi rune) *CharRange {
	set := make(map[rune]struct{}, hi-lo+1)
	for c := lo; c <= hi; c++ {
		set[c] = struct{}{}
	}
	return &CharRange{set: set}
}

// Union returns a range containing the runes of either r or other.
func (r *CharRange) Union(other *CharRange) *CharRange {
	set := maps.Clone(r.set)
	for c := range other.set {
		set[c] = struct{}{}
	}
	return &CharRange{set: set}
}

// Intersect returns a range containing the runes present in both r and other.
func (r *CharRange) Intersect(other *CharRange) *CharRange {
	set := make(map[rune]struct{})
	for c := range r.set {
		if _, ok := other.set[c]; ok {
			set[c] = struct{}{}
		}
	}
	return &CharRange{set: set}
}

// Subtract returns a range containing the runes of r that are not in other.
func (r *CharRange) Subtract(other *CharRange) *CharRange {
	set := make(map[rune]struct{})
	for c := range r.set {
		if _, ok := other.set[c]; !ok {
			set[c] = struct{}{}
		}
	}
	return &CharRange{set: set}
}

// Contains reports whether c is in the range.
func (r *CharRange) Contains(c rune) bool {
	_, ok := r.set[c]
	return ok
}

// Len returns the number of runes in the range.
func (r *CharRange) Len() int { return len(r.set) }

// Equal reports whether r and other contain exactly the same runes.
func (r *CharRange) Equal(other *CharRange) bool {
	if len(r.set) != len(other.set) {
		return false
	}
	for c := range r.set {
		if _, ok := other.set[c]; !ok {
			return false
		}
	}
	return true
}

// String renders the runes of the range in code point order.
func (r *CharRange) String() string {
	runes := maps.Keys(r.set)
	slices.Sort(runes)
	var sb strings.Builder
	for _, c := range runes {
		sb.WriteRune(c)
	}
	return sb.String()
}
