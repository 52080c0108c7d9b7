package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins_AreValid(t *testing.T) {
	for _, def := range Builtins() {
		t.Run(def.Name, func(t *testing.T) {
			assert.NoError(t, def.Validate())
		})
	}
}

func TestRegistry_Load(t *testing.T) {
	broken := &schema.Definition{Name: "broken", Kind: domain.KindDFA, States: []string{"q0"}, Start: "q9"}
	loader := memory.NewLoader(append(Builtins(), broken)...)

	reg := New(loader)
	err := reg.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDefinition))

	assert.Equal(t, []string{BitFlipper, ContainsOne, NFAExample, ZeroThenOne}, reg.Names())

	def, err := reg.Get(ContainsOne)
	require.NoError(t, err)
	assert.Equal(t, domain.KindDFA, def.Kind)

	_, err = reg.Get("broken")
	assert.True(t, errors.Is(err, domain.ErrDefinitionNotFound))
}

func TestRegistry_Builtin(t *testing.T) {
	reg := NewBuiltin()
	assert.Len(t, reg.Definitions(), 4)
	assert.Equal(t, NFAExample, reg.Names()[0])

	def, err := reg.Get(BitFlipper)
	require.NoError(t, err)
	def.Transitions[0].Write = "X"

	again, _ := reg.Get(BitFlipper)
	assert.Equal(t, "1", again.Transitions[0].Write)
	assert.Nil(t, Builtin("missing"))
}
