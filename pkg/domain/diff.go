package domain

// ConfigDiff represents the changes between two configurations.
// It is designed to be serialized to JSON for partial updates on a client
// that already displays the previous configuration.
type ConfigDiff struct {
	// Entered and Left list NFA states added to and removed from the active-set.
	Entered []string `json:"entered,omitempty"`
	Left    []string `json:"left,omitempty"`

	State    *string `json:"state,omitempty"`
	Position *int    `json:"position,omitempty"`
	Head     *int    `json:"head,omitempty"`

	// Writes maps tape indexes to their new symbol, including cells appended
	// by tape extension.
	Writes map[int]string `json:"writes,omitempty"`
}

// Diff calculates the difference between prev and next.
// If prev is nil, it returns a diff representing the entire next configuration.
// It returns nil when nothing changed.
func Diff(prev *Configuration, next Configuration) *ConfigDiff {
	var old Configuration
	if prev != nil {
		old = *prev
	}

	diff := &ConfigDiff{}

	diff.Entered, diff.Left = diffActive(old.Active, next.Active)

	if prev == nil || old.State != next.State {
		if next.State != "" {
			s := next.State
			diff.State = &s
		}
	}
	if prev == nil || old.Position != next.Position {
		p := next.Position
		diff.Position = &p
	}
	if next.Kind == KindTuring && (prev == nil || old.Head != next.Head) {
		h := next.Head
		diff.Head = &h
	}

	diff.Writes = diffTape(old.Tape, next.Tape)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffActive(old, next StateSet) (entered, left []string) {
	for _, s := range next {
		if !old.Contains(s) {
			entered = append(entered, s)
		}
	}
	for _, s := range old {
		if !next.Contains(s) {
			left = append(left, s)
		}
	}
	return entered, left
}

// diffTape assumes the tape only grows to the right, which the Turing engine guarantees.
func diffTape(old, next []string) map[int]string {
	var writes map[int]string
	for i, sym := range next {
		if i < len(old) && old[i] == sym {
			continue
		}
		if writes == nil {
			writes = make(map[int]string)
		}
		writes[i] = sym
	}
	return writes
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *ConfigDiff) IsEmpty() bool {
	return len(d.Entered) == 0 &&
		len(d.Left) == 0 &&
		d.State == nil &&
		d.Position == nil &&
		d.Head == nil &&
		len(d.Writes) == 0
}
