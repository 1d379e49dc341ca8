package engine

// VariableStack tracks, for the query currently in progress, which name
// (or anonymous slot) owns each input offset and the words captured there.
// It is reset at the top of every top-level query and at every recursive
// context switch (§4.3.1) — never shared across queries.
type VariableStack struct {
	owner   map[int]string   // offset -> owning name ("" for anonymous)
	capture map[string][]string // name -> captured words, in capture order
	order   []string             // names in first-seen order, for determinism
}

// NewVariableStack returns an empty stack.
func NewVariableStack() *VariableStack {
	return &VariableStack{
		owner:   make(map[int]string),
		capture: make(map[string][]string),
	}
}

// Reset clears all state so the stack can be reused for a new query,
// avoiding an allocation per query.
func (s *VariableStack) Reset() {
	for k := range s.owner {
		delete(s.owner, k)
	}
	for k := range s.capture {
		delete(s.capture, k)
	}
	s.order = s.order[:0]
}

// Update records that position offset is currently owned by name (or the
// anonymous slot if name is ""). Must be called before the match decision
// at that offset is acted on, so anonymous wildcards also track ownership.
func (s *VariableStack) Update(name string, offset int) {
	s.owner[offset] = name
	if _, ok := s.capture[name]; !ok {
		s.order = append(s.order, name)
	}
}

// Capture appends origWord to the capture owned at offset.
func (s *VariableStack) Capture(origWord string, offset int) {
	name, ok := s.owner[offset]
	if !ok {
		return
	}
	s.capture[name] = append(s.capture[name], origWord)
}

// Value returns the concatenated capture for name, words space-joined in
// input order, or "" if nothing was captured under that name.
func (s *VariableStack) Value(name string) string {
	words := s.capture[name]
	if len(words) == 0 {
		return ""
	}
	out := words[0]
	for _, w := range words[1:] {
		out += " " + w
	}
	return out
}

// Words returns the raw capture slice for name, for positional lookups
// (e.g. "the first wildcard capture").
func (s *VariableStack) Words(name string) []string {
	return s.capture[name]
}

// snapshot returns a deep copy suitable for restoring after a branch of the
// DFS that must not see another branch's captures.
func (s *VariableStack) snapshot() *VariableStack {
	cp := &VariableStack{
		owner:   make(map[int]string, len(s.owner)),
		capture: make(map[string][]string, len(s.capture)),
		order:   append([]string(nil), s.order...),
	}
	for k, v := range s.owner {
		cp.owner[k] = v
	}
	for k, v := range s.capture {
		cp.capture[k] = append([]string(nil), v...)
	}
	return cp
}

// restore replaces s's contents with snap's, in place, so callers can keep
// holding the same *VariableStack value across the restore.
func (s *VariableStack) restore(snap *VariableStack) {
	s.owner = snap.owner
	s.capture = snap.capture
	s.order = snap.order
}
