package loam

// Metadata is the frontmatter of a Markdown definition.
// Values stay untyped so that `alphabet: [0, 1]` or a numeric state name reach
// schema.Decode, whose weak decoding turns them into strings.
type Metadata struct {
	Name        string           `json:"name" mapstructure:"name"`
	Kind        string           `json:"kind" mapstructure:"kind"`
	Description string           `json:"description" mapstructure:"description"`
	States      []any            `json:"states" mapstructure:"states"`
	Alphabet    []any            `json:"alphabet" mapstructure:"alphabet"`
	Start       any              `json:"start" mapstructure:"start"`
	Accepting   []any            `json:"accepting" mapstructure:"accepting"`
	Blank       any              `json:"blank" mapstructure:"blank"`
	Transitions []map[string]any `json:"transitions" mapstructure:"transitions"`
}

// raw rebuilds the generic map schema.Decode expects, leaving out absent keys.
func (m Metadata) raw(name, body string) map[string]any {
	out := map[string]any{
		"name": name,
		"kind": m.Kind,
	}
	if m.Name != "" {
		out["name"] = m.Name
	}
	switch {
	case m.Description != "":
		out["description"] = m.Description
	case body != "":
		out["description"] = body
	}
	if m.States != nil {
		out["states"] = m.States
	}
	if m.Alphabet != nil {
		out["alphabet"] = m.Alphabet
	}
	if m.Start != nil {
		out["start"] = m.Start
	}
	if m.Accepting != nil {
		out["accepting"] = m.Accepting
	}
	if m.Blank != nil {
		out["blank"] = m.Blank
	}
	if m.Transitions != nil {
		rows := make([]any, len(m.Transitions))
		for i, t := range m.Transitions {
			rows[i] = t
		}
		out["transitions"] = rows
	}
	return out
}
