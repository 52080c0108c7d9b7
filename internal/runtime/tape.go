package runtime

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Tape is a left-bounded, right-extensible sequence of cells.
// The head is always a valid index into the cells.
type Tape struct {
	cells []string
	head  int
	blank string
}

// NewTape builds a tape from input, one cell per rune. A blank cell is appended
// when the input holds none, so the head always has a readable cell to its right.
func NewTape(input, blank string) *Tape {
	cells := domain.Tokenize(input)
	hasBlank := false
	for _, c := range cells {
		if c == blank {
			hasBlank = true
			break
		}
	}
	if !hasBlank {
		cells = append(cells, blank)
	}
	return &Tape{cells: cells, blank: blank}
}

// Read returns the symbol under the head.
func (t *Tape) Read() string {
	return t.cells[t.head]
}

// Write replaces the symbol under the head.
func (t *Tape) Write(symbol string) {
	t.cells[t.head] = symbol
}

// Move shifts the head. Moving right past the edge appends one blank; moving
// left at the origin leaves the head at 0.
func (t *Tape) Move(m domain.Move) {
	switch m {
	case domain.MoveRight:
		t.head++
		if t.head >= len(t.cells) {
			t.cells = append(t.cells, t.blank)
		}
	case domain.MoveLeft:
		if t.head > 0 {
			t.head--
		}
	}
}

// Head returns the head index.
func (t *Tape) Head() int { return t.head }

// Len returns the number of cells.
func (t *Tape) Len() int { return len(t.cells) }

// Cells returns a copy of the cells.
func (t *Tape) Cells() []string {
	return append(make([]string, 0, len(t.cells)), t.cells...)
}

// String joins the cells.
func (t *Tape) String() string {
	return strings.Join(t.cells, "")
}

// restore replaces cells and head from a stored configuration.
func (t *Tape) restore(cells []string, head int) {
	t.cells = append(make([]string, 0, len(cells)), cells...)
	if len(t.cells) == 0 {
		t.cells = append(t.cells, t.blank)
	}
	t.head = max(0, min(head, len(t.cells)-1))
}
