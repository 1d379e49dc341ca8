package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExactMatch(t *testing.T) {
	tok := Token{OriginalText: "'Run'", NormalisedText: "'run'", Lemma: "run", PosTag: "verb", Kind: KindWord}
	got := ParseExactMatch(tok)

	assert.Equal(t, "run", got.NormalisedText)
	assert.Empty(t, got.Lemma)
	assert.Empty(t, got.PosTag)
	assert.Equal(t, KindWord, got.Kind)
}

func TestParseExactMatch_leavesPlainWordsAlone(t *testing.T) {
	tok := Token{OriginalText: "hello", NormalisedText: "hello", Lemma: "hello", PosTag: "noun", Kind: KindWord}
	got := ParseExactMatch(tok)
	assert.Equal(t, tok, got)
}
