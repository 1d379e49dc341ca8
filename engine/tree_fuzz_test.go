package engine

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
)

// TestGetResponsesFuzzNoPanic pounds GetResponses with arbitrary strings
// drawn from U+0000-U+07FF (ASCII plus the two-byte UTF-8 range) against
// a tree mixing literals, wildcards and
// variables — the same no-panic shakeout tigerwill90-fox runs against its
// own pattern parser (node_test.go's TestParseBraceSegmentFuzzNoPanic), a
// reasonable analogue since both are trie/prefix-tree pattern matchers.
func TestGetResponsesFuzzNoPanic(t *testing.T) {
	tr := newTestTree()
	tr.Add(Rule{ID: 1, Inputs: []string{"hello *"}, Output: Unconditional("hi")})
	tr.Add(Rule{ID: 2, Inputs: []string{"my name is [name]"}, Output: Unconditional("nice to meet you [name]")})
	tr.Add(Rule{ID: 3, Inputs: []string{"'Run' now"}, Output: Unconditional("ok")})
	tr.Add(Rule{ID: 4, Inputs: []string{"ask [q]"}, Output: Unconditional("I heard {{q}}")})
	tr.Add(Rule{ID: 5, Inputs: []string{"hello"}, Output: Unconditional("hi there")})

	unicodeRanges := fuzz.UnicodeRanges{
		{First: 0x00, Last: 0x7F},
		{First: 0x80, Last: 0x07FF},
	}
	f := fuzz.New().NilChance(0).NumElements(500, 1000).Funcs(unicodeRanges.CustomStringFuzzFunc())

	inputs := make(map[string]struct{})
	f.Fuzz(&inputs)

	for input := range inputs {
		assert.NotPanics(t, func() {
			tr.GetResponses(input)
		})
	}
}

// TestAddFuzzNoPanic does the same for rule insertion: arbitrary pattern
// text must never panic the tree builder, even when it contains stray
// wildcard/variable/quote characters that don't form well-formed tokens.
func TestAddFuzzNoPanic(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(200, 400)

	patterns := make(map[string]struct{})
	f.Fuzz(&patterns)

	id := 1000
	for pattern := range patterns {
		tr := newTestTree()
		id++
		assert.NotPanics(t, func() {
			tr.Add(Rule{ID: id, Inputs: []string{pattern}, Output: Unconditional("x")})
		})
	}
}
