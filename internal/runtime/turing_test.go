package runtime

import (
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTuring(t *testing.T, def *schema.Definition) *Turing {
	t.Helper()
	tm, err := NewTuring(def)
	require.NoError(t, err)
	return tm
}

func TestTuring_MalformedMoveIsFatal(t *testing.T) {
	def := bitFlipper(t)
	def.Transitions[0].Move = "sideways"

	_, err := NewTuring(def)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDefinition))
	assert.Contains(t, err.Error(), "(q0, '0')")

	_, err = Compile(def)
	assert.True(t, errors.Is(err, domain.ErrInvalidDefinition), "Compile does not rely on prior validation")
}

func TestTape_Extension(t *testing.T) {
	tape := NewTape("01", "_")
	assert.Equal(t, []string{"0", "1", "_"}, tape.Cells(), "a blank is appended when missing")

	withBlank := NewTape("0_1", "_")
	assert.Equal(t, 3, withBlank.Len(), "no blank is appended when one is present")

	tape.Move(domain.MoveLeft)
	assert.Equal(t, 0, tape.Head(), "head saturates at the origin")

	for i := 0; i < 5; i++ {
		tape.Move(domain.MoveRight)
		assert.Less(t, tape.Head(), tape.Len())
	}
	assert.Equal(t, 5, tape.Head())
	assert.Equal(t, "01___", tape.String()[:5])
	assert.Equal(t, "_", tape.Read())

	tape.Move(domain.MoveStay)
	assert.Equal(t, 5, tape.Head())
}

func TestTuring_BitFlipper(t *testing.T) {
	tm := newTuring(t, bitFlipper(t))
	tm.Initialize("0000")

	steps := 0
	for {
		status, edge := tm.Step()
		assert.Less(t, tm.Tape().Head(), tm.Tape().Len(), "head must stay within the tape")
		if status != StepMoved {
			assert.Equal(t, StepFinalState, status)
			break
		}
		if steps < 4 {
			assert.Equal(t, "1", edge.Write)
			assert.Equal(t, domain.MoveRight, edge.Move)
		}
		steps++
	}

	assert.Equal(t, 5, steps)
	assert.Equal(t, "qf", tm.State())
	assert.Equal(t, "1111_", tm.Tape().String())
	assert.Equal(t, 4, tm.Tape().Head(), "head rests past the last written cell")
}

func TestTuring_Run(t *testing.T) {
	tm := newTuring(t, bitFlipper(t))
	tm.Initialize("0110")

	out, err := tm.Run(0)
	require.NoError(t, err)
	assert.Equal(t, "1001_", out)
	assert.True(t, tm.IsFinal())
}

func TestTuring_RunStepLimit(t *testing.T) {
	def := &schema.Definition{
		Name:   "forever",
		Kind:   domain.KindTuring,
		States: []string{"q0"},
		Start:  "q0",
		Blank:  "_",
		Transitions: []schema.Transition{
			{From: "q0", Symbol: "_", To: to("q0"), Write: "_", Move: domain.MoveRight},
		},
	}
	require.NoError(t, def.Validate())

	tm := newTuring(t, def)
	tm.Initialize("")
	_, err := tm.Run(10)
	assert.True(t, errors.Is(err, domain.ErrStepLimit))
	assert.Equal(t, 10, tm.Tape().Head())
}

func TestTuring_NoTransitionHalts(t *testing.T) {
	tm := newTuring(t, bitFlipper(t))
	tm.Initialize("0x")

	status, _ := tm.Step()
	require.Equal(t, StepMoved, status)

	status, edge := tm.Step()
	assert.Equal(t, StepNoTransition, status)
	assert.Equal(t, "x", edge.Symbol)
	assert.Equal(t, "1x_", tm.Tape().String(), "a halt leaves the tape untouched")
	assert.Equal(t, 1, tm.Tape().Head())
}

func TestTuring_TapeAlphabet(t *testing.T) {
	def := bitFlipper(t)
	def.Alphabet = []string{"0", "1"}
	require.NoError(t, def.Validate())

	tm := newTuring(t, def)
	tm.Initialize("x")
	status, _ := tm.Step()
	assert.Equal(t, StepUnrecognizedSymbol, status)

	_, err := tm.Run(0)
	var symErr *SymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, "x", symErr.Symbol)
}
