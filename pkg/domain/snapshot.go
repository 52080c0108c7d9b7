package domain

import "time"

// Snapshot is the persistable form of a simulation session.
// It carries the whole history so a session can be resumed without recomputation.
type Snapshot struct {
	SessionID string       `json:"session_id"`
	Automaton string       `json:"automaton"`
	Kind      Kind         `json:"kind"`
	Input     string       `json:"input"`
	Cyclic    bool         `json:"cyclic,omitempty"`
	Records   []StepRecord `json:"records"`
	Index     int          `json:"index"`

	// Verdict is set once the run has ended.
	Verdict *Result `json:"verdict,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries the encrypted snapshot when the store is wrapped by an
	// encryption middleware; the other fields are then only an envelope.
	Sealed string `json:"sealed,omitempty"`
}

// Finished reports whether a terminal verdict was reached.
func (s *Snapshot) Finished() bool {
	return s.Verdict != nil
}

// Clone deep-copies the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Records = make([]StepRecord, len(s.Records))
	for i, r := range s.Records {
		out.Records[i] = r.Clone()
	}
	if s.Verdict != nil {
		v := *s.Verdict
		v.Config = s.Verdict.Config.Clone()
		out.Verdict = &v
	}
	return &out
}
