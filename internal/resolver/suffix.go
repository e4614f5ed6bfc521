package resolver

import "strings"

// Suffixes returns the shortest dotted suffixes of a and b that differ.
//
// Segments are compared from the right of each sequence in lock-step and the scan
// stops at the first pair that differ, each result is then its own sequence joined
// from that index to the end:
//
//	Suffixes([NS A Dummy], [NS B Dummy1])   // "Dummy", "Dummy1"
//	Suffixes([NS A Dummy], [NS B Dummy])    // "A.Dummy", "B.Dummy"
//
// If the scan runs off the start of the shorter sequence without finding a difference
// (the names are identical or one is a dotted suffix of the other), there is nothing
// to disambiguate and each result is just its own last segment.
//
// Suffixes is total over non-empty sequences, given an empty sequence the
// corresponding result is "".
func Suffixes(a, b []string) (string, string) {
	if len(a) == 0 || len(b) == 0 {
		return last(a), last(b)
	}

	i, j := len(a)-1, len(b)-1
	for i >= 0 && j >= 0 {
		if a[i] != b[j] {
			return strings.Join(a[i:], "."), strings.Join(b[j:], ".")
		}

		i--
		j--
	}

	return last(a), last(b)
}

// last returns the final element of segments, or "" if there isn't one.
func last(segments []string) string {
	if len(segments) == 0 {
		return ""
	}

	return segments[len(segments)-1]
}
