package engine

// ScoringAlgorithm folds per-step match weights into a cumulative score
// for the path the matcher is currently descending. The tree treats the
// formula as opaque (spec §4.5); it must support being reset both when the
// DFS re-enters the root for a new top-level query and when a recursive
// template expansion installs a fresh instance (§4.3.1).
//
// The scored DFS fans out over every child at each node, not just the
// first match, so sibling branches must not see each other's score
// contributions — the same isolation problem the teacher solves for
// captures via copyCaptures() before each recursive attempt
// (matchtree.go). ScoringAlgorithm generalizes that with Clone: the
// matcher clones before descending into a child and keeps the clone only
// for that branch, discarding it on return.
type ScoringAlgorithm interface {
	UpdateScore(offset int, weight float64)
	CurrentScore() float64
	Reset()
	Clone() ScoringAlgorithm
}

// WeightedScorer is the default ScoringAlgorithm: a position-weighted sum
// that gives earlier tokens more influence, so a rule matching the start
// of an utterance exactly outranks one that only matches a later wildcard
// span — the spec's "more specific wins" intuition (cf. the teacher's
// exact > set > '_' > '*' ranking) without a fixed specificity enum.
type WeightedScorer struct {
	total float64
}

// NewWeightedScorer returns a zeroed scorer.
func NewWeightedScorer() *WeightedScorer {
	return &WeightedScorer{}
}

// UpdateScore adds weight, discounted by 1/(offset+1), to the running
// total.
func (s *WeightedScorer) UpdateScore(offset int, weight float64) {
	discount := 1.0 / float64(offset+1)
	s.total += weight * discount
}

// CurrentScore returns the running total.
func (s *WeightedScorer) CurrentScore() float64 {
	return s.total
}

// Reset zeroes the running total for reuse across queries.
func (s *WeightedScorer) Reset() {
	s.total = 0
}

// Clone returns an independent copy carrying the same running total.
func (s *WeightedScorer) Clone() ScoringAlgorithm {
	return &WeightedScorer{total: s.total}
}
