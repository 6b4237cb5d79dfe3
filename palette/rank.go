package palette

// Match is a haystack entry together with its distance to the query.
// Position is the entry's insertion index, which is also its index in the
// palette returned by Index.To.
type Match struct {
	Entry
	Position int
	Distance float64
}

func closer(a, b float64) bool  { return a < b }
func farther(a, b float64) bool { return a > b }

// ranking keeps the best matches seen so far, ordered by before, in a
// buffer of fixed capacity. Offering n candidates costs O(n·k).
type ranking struct {
	matches []Match
	before  func(a, b float64) bool
}

func newRanking(capacity int, before func(a, b float64) bool) *ranking {
	return &ranking{
		matches: make([]Match, 0, capacity),
		before:  before,
	}
}

// offer inserts m at its rank. A candidate only moves ahead of entries it
// strictly beats, so on equal distance the entry already held wins.
func (r *ranking) offer(m Match) {
	n := len(r.matches)
	pos := n
	for pos > 0 && r.before(m.Distance, r.matches[pos-1].Distance) {
		pos--
	}
	if pos == cap(r.matches) {
		return
	}

	if n < cap(r.matches) {
		r.matches = r.matches[:n+1]
	}
	copy(r.matches[pos+1:], r.matches[pos:])
	r.matches[pos] = m
}
