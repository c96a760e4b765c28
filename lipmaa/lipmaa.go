// Package lipmaa computes the Bamboo lipmaa skip-link target: the earlier
// sequence number a given entry links to in addition to its direct
// back-link, giving O(log n) certificate paths through a log.
package lipmaa

// Lipmaa returns the skip-link target sequence number for n (n >= 1). By
// convention Lipmaa(1) == 1, though the entry format never actually stores
// that link (seq 1 is the genesis entry and has no links at all). For
// n > 1, the result is always in [1, n).
func Lipmaa(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return lipmaaNatural(n)
}

// lipmaaNatural computes the underlying skip-link target, using the natural
// value 0, not 1, for n == 1. Lipmaa layers the public by-convention value
// of 1 on top of this and only calls it for n > 1.
func lipmaaNatural(n uint64) uint64 {
	if n == 1 {
		return 0
	}

	// Find the largest k with g(k) = (3^k - 1) / 2 strictly less than n.
	// m tracks g(k), po3 tracks 3^k for that same k.
	m, po3 := uint64(0), uint64(1)
	for {
		nextPo3 := po3 * 3
		nextM := (nextPo3 - 1) / 2
		if nextM >= n {
			break
		}
		po3, m = nextPo3, nextM
	}

	// n sits exactly at the next complete skip-tree boundary: link back to
	// the root of that tree.
	if n == 3*m+1 {
		return m
	}

	// Otherwise walk down the nested skip-trees: reduce n modulo each
	// smaller tree size g(k), g(k-1), ... until it lands on the end of one,
	// and link back across that tree. At the smallest size, 1, this is n-1.
	u := n
	for u%m != 0 {
		u %= m
		m = (m - 1) / 3
	}
	return n - m
}
