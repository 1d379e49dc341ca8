package engine

import "strings"

// expand substitutes every variable reference in template (spec §4.3).
// Two delimited forms are recognised: a plain reference, `[name]`,
// substituted with the current stack's captured value, and a recursive
// reference, `{{name}}`, whose captured value is re-dispatched through the
// engine as a brand-new utterance (getRecResponse) and substituted with
// the resulting response. If a recursive reference resolves to an empty
// response, the whole expansion fails — the caller (getValidOutput) moves
// on to the next omap entry.
func (t *Tree) expand(template string, depth int) (string, bool) {
	var sb strings.Builder
	i := 0
	for i < len(template) {
		start, end, name, recursive, found := nextVariableRef(template, i)
		if !found {
			sb.WriteString(template[i:])
			break
		}
		sb.WriteString(template[i:start])

		if recursive {
			resp, ok := t.getRecResponse(t.stack.Value(name), depth+1)
			if !ok {
				return "", false
			}
			sb.WriteString(resp)
		} else {
			sb.WriteString(t.stack.Value(name))
		}
		i = end
	}
	return strings.TrimSpace(sb.String()), true
}

// nextVariableRef is the variable-reference parser (spec §6): it scans
// template from offset for the next reference and reports the span to
// replace ([start,end)), the captured name, and whether the reference is
// recursive. found is false once no further reference exists.
func nextVariableRef(template string, offset int) (start, end int, name string, recursive bool, found bool) {
	for i := offset; i < len(template); i++ {
		switch template[i] {
		case '[':
			close := strings.IndexByte(template[i+1:], ']')
			if close < 0 {
				continue
			}
			return i, i + 1 + close + 1, template[i+1 : i+1+close], false, true
		case '{':
			if i+1 >= len(template) || template[i+1] != '{' {
				continue
			}
			close := strings.Index(template[i+2:], "}}")
			if close < 0 {
				continue
			}
			nameStart := i + 2
			nameEnd := nameStart + close
			return i, nameEnd + 2, template[nameStart:nameEnd], true, true
		}
	}
	return 0, 0, "", false, false
}

// getRecResponse implements the scoped context switch in spec §4.3.1: the
// current variable stack and scoring algorithm are saved, fresh ones
// installed, input re-dispatched through getResponsesAtDepth, and the saved
// state restored before returning. The loop detector stays shared. Only the response string
// survives; the recursive call's own score and match trail are discarded
// by design (an open question the spec leaves unresolved, §9).
func (t *Tree) getRecResponse(input string, depth int) (string, bool) {
	if depth > t.maxExpandDepth {
		return "", false
	}
	savedStack, savedScorer := t.stack, t.scorer

	t.stack = NewVariableStack()
	t.scorer = savedScorer.Clone()
	t.scorer.Reset()

	// t.loopSet is deliberately left untouched: §4.3.1 only names the
	// variable stack and scoring algorithm as state a recursive dispatch
	// replaces with fresh instances. Keeping the loop detector shared is
	// what makes a directly self-referential rule trip on its first
	// re-entry instead of spinning until the expansion-depth cap above
	// rejects it.
	outputs, _ := t.getResponsesAtDepth(input, depth)

	t.stack, t.scorer = savedStack, savedScorer

	if len(outputs) == 0 || outputs[0] == "" {
		return "", false
	}
	return outputs[0], true
}
