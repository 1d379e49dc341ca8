package engine

import (
	"sort"
	"strings"
)

// candidate is an in-flight match result before sorting/trail-splitting.
type candidate struct {
	ruleID     int
	inputIndex int
	output     string
	score      float64
}

// GetResponses runs the scored DFS over input and returns every candidate
// response, best score first (ties broken by discovery order), together
// with the parallel (ruleID, inputIndex) trail (spec §4.2).
func (t *Tree) GetResponses(input string) ([]string, []Trail) {
	return t.getResponsesAtDepth(input, 0)
}

// GetResponse returns only the best-scoring response, or ("", nil) if
// nothing matched.
func (t *Tree) GetResponse(input string) (string, []Trail) {
	outputs, trail := t.GetResponses(input)
	if len(outputs) == 0 {
		return "", nil
	}
	return outputs[0], trail[:1]
}

// getResponsesAtDepth is GetResponses parameterized by the current
// recursive-expansion depth, so getRecResponse (§4.3.1) can thread the
// overrun cap through a re-entrant query instead of resetting it.
//
// The loop detector is deliberately NOT cleared when depth > 0: §4.3.1
// names only the variable stack and scoring algorithm as the state a
// recursive dispatch swaps for fresh instances. Leaving the loop detector
// shared is what makes a directly self-referential recursive variable
// (rule "[x]" -> "{{x}}", scenario S5) trip on the very first re-entry
// instead of spinning until the expansion-depth cap kicks in.
func (t *Tree) getResponsesAtDepth(input string, depth int) ([]string, []Trail) {
	words := t.tokenizeQuery(input)

	t.stack.Reset()
	t.scorer.Reset()
	if depth == 0 {
		for k := range t.loopSet {
			delete(t.loopSet, k)
		}
	}

	var results []candidate
	t.scoredDFS(&results, t.root, words, 0, depth)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	outputs := make([]string, len(results))
	trail := make([]Trail, len(results))
	for i, r := range results {
		outputs[i] = r.output
		trail[i] = Trail{RuleID: r.ruleID, InputIndex: r.inputIndex}
	}
	return outputs, trail
}

// tokenizeQuery tokenises a user utterance: strip apostrophes first (so
// contractions don't get mistaken for exact-match quoting), then filter
// symbols (spec §4.2 step 1).
func (t *Tree) tokenizeQuery(input string) []Token {
	input = strings.ReplaceAll(input, "'", "")
	raw := t.lemmatizer.Tokenize(input)
	out := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.Kind == KindSymbol {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// scoredDFS walks every child of node that matches words[offset], fanning
// out into independent branches: each branch gets its own snapshot of the
// variable stack and scorer so sibling candidates never see each other's
// captures or score contributions (spec §4.2.1). depth is the recursive
// expansion depth this query is running at (0 unless reached through
// getRecResponse), threaded down to handleEndWord/getValidOutput/expand.
func (t *Tree) scoredDFS(results *[]candidate, node *MatchNode, words []Token, offset, depth int) {
	if offset >= len(words) {
		t.handleEndWord(results, node, offset, depth)
		return
	}

	tok := words[offset]
	stackBefore := t.stack.snapshot()
	scorerBefore := t.scorer

	for _, c := range node.children {
		t.stack.restore(stackBefore.snapshot())
		t.scorer = scorerBefore.Clone()

		if c.kind == nodeVariable {
			t.stack.Update(c.varName, offset)
		} else {
			t.stack.Update("", offset)
		}

		weight := t.policy.Weight(c, tok)
		if weight <= 0 {
			continue
		}
		t.stack.Capture(tok.OriginalText, offset)
		t.scorer.UpdateScore(offset, weight)

		if offset+1 < len(words) {
			t.scoredDFS(results, c, words, offset+1, depth)
		} else {
			t.handleEndWord(results, c, offset, depth)
		}
	}

	t.stack.restore(stackBefore)
	t.scorer = scorerBefore
}

// handleEndWord is reached once input is fully consumed at node (or node
// itself is where the scored DFS started, for an empty query). The loop
// detector guards against the wildcard/variable self-loop and the
// zero-hop shortcut producing an infinite terminal recursion (spec
// §4.2.2); getValidOutput is never re-entered for a (node, offset) pair
// whose earlier call is still in progress. The pair is removed on return,
// so a later, separate path reaching the same pair runs it again.
func (t *Tree) handleEndWord(results *[]candidate, node *MatchNode, offset, depth int) {
	key := loopKey{node: node, offset: offset}
	if _, seen := t.loopSet[key]; seen {
		return
	}
	t.loopSet[key] = struct{}{}
	defer delete(t.loopSet, key)

	r, ok := t.getValidOutput(node, depth)
	if !ok {
		return
	}
	r.score = t.scorer.CurrentScore()
	*results = append(*results, r)
}

// getValidOutput iterates node's omap in deterministic key order and
// returns the first entry whose ConditionalOutputList yields a template
// that expands successfully — spec §4.2.3 describes a single-result
// procedure ("call expand... on success, return a Result ... on
// expansion failure, continue with the next omap entry"), and §4.2.2
// treats the outcome as one candidate, not a set. An entry whose
// expansion fails (recursive variable expanded to empty, or depth
// overrun) is skipped in favor of the next omap entry (§7).
func (t *Tree) getValidOutput(node *MatchNode, depth int) (candidate, bool) {
	if len(node.omap) == 0 {
		return candidate{}, false
	}
	// Map iteration order is randomized; sort keys so repeated queries
	// against the same tree are byte-identical (determinism property, §8).
	keys := make([]OmapKey, 0, len(node.omap))
	for key := range node.omap {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, key := range keys {
		list := node.omap[key]
		template, ok := list.NextValidOutput(t.stack)
		if !ok {
			continue
		}
		expanded, ok := t.expand(template, depth)
		if !ok {
			continue
		}
		ruleID, inputIndex := key.Decode()
		return candidate{ruleID: ruleID, inputIndex: inputIndex, output: expanded}, true
	}
	return candidate{}, false
}
