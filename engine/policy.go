package engine

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// MatchPolicy scores how well a node matches an input token. It returns a
// weight in [0,1]; 0 means no match. Implementations are pluggable — the
// tree only depends on this interface (spec §4.4).
type MatchPolicy interface {
	Weight(node *MatchNode, tok Token) float64
}

// wildcardWeight is the constant positive weight a WildcardNode/
// VariableNode returns for any token, regardless of min. Zero-span
// handling for a zero-min wildcard is structural (the shortcut edge in
// invariant 3), not something the policy expresses.
const wildcardWeight = 0.5

// fuzzyFloor is the minimum Jaro-Winkler similarity a WordNode will accept
// as a (non-exact) match; below this, two words are considered unrelated.
const fuzzyFloor = 0.84

// FuzzyPolicy is the default MatchPolicy: exact-or-fuzzy equality for
// WordNodes, constant weight for wildcard/variable nodes.
type FuzzyPolicy struct {
	metric strutil.StringMetric
}

// NewFuzzyPolicy builds a FuzzyPolicy using Jaro-Winkler similarity for
// fuzzy word comparison.
func NewFuzzyPolicy() *FuzzyPolicy {
	return &FuzzyPolicy{metric: metrics.NewJaroWinkler()}
}

// Weight implements MatchPolicy.
func (p *FuzzyPolicy) Weight(node *MatchNode, tok Token) float64 {
	switch node.kind {
	case nodeWildcard, nodeVariable:
		return wildcardWeight
	case nodeWord:
		return p.wordWeight(node.token, tok)
	default:
		return 0
	}
}

func (p *FuzzyPolicy) wordWeight(want, got Token) float64 {
	if want.NormalisedText == got.NormalisedText {
		return 1.0
	}
	// Exact-match literals (ParseExactMatch cleared Lemma/PosTag) defeat
	// lemma-based matching entirely: only the literal normalised form
	// can match, which the equality check above already covers.
	if want.Lemma == "" && want.PosTag == "" {
		return 0
	}
	if want.Lemma != "" && want.Lemma == got.Lemma {
		if want.PosTag == "" || want.PosTag == got.PosTag {
			return 0.95
		}
		return 0.8
	}
	sim := strutil.Similarity(strings.ToLower(want.NormalisedText), strings.ToLower(got.NormalisedText), p.metric)
	if sim < fuzzyFloor {
		return 0
	}
	return sim
}
