package loam_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/registry"
	goloam "github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.DefinitionLoader = (*loam.Loader)(nil)

const containsOne = `---
kind: dfa
states: [q0, q1]
alphabet: [0, 1]
start: q0
accepting: [q1]
transitions:
  - {from: q0, symbol: 0, to: q0}
  - {from: q0, symbol: 1, to: q1}
  - {from: q1, symbol: 0, to: q1}
  - {from: q1, symbol: 1, to: q1}
---
# Contains one

Accepts binary strings with at least one **1**.
`

const flipper = `---
name: flipper
kind: tm
description: Inverts bits.
states: [q0, qf]
start: q0
accepting: [qf]
transitions:
  - {from: q0, symbol: 0, to: q0, write: 1, move: R}
  - {from: q0, symbol: 1, to: q0, write: 0, move: R}
  - {from: q0, symbol: _, to: qf, write: _, move: S}
---
Ignored body.
`

func TestLoader_Markdown(t *testing.T) {
	dir := testutils.WriteDefinitions(t, map[string]string{
		"contains-one.md": containsOne,
		"bits.md":         flipper,
	})
	loader, err := loam.Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	names, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"contains-one", "flipper"}, names, "frontmatter names win over file names")

	def, err := loader.Get(ctx, "contains-one")
	require.NoError(t, err)
	assert.Equal(t, domain.KindDFA, def.Kind)
	assert.Equal(t, []string{"0", "1"}, def.Alphabet)
	assert.Equal(t, []string{"q0"}, def.Transitions[0].To)
	assert.Contains(t, def.Description, "at least one **1**", "the body becomes the description")

	tm, err := loader.Get(ctx, "flipper")
	require.NoError(t, err)
	assert.Equal(t, domain.KindTuring, tm.Kind)
	assert.Equal(t, "Inverts bits.", tm.Description)
	assert.Equal(t, domain.MoveRight, tm.Transitions[0].Move)
	assert.Equal(t, domain.DefaultBlank, tm.Blank)
}

func TestLoader_FeedsRegistry(t *testing.T) {
	_, repo := testutils.SetupDefinitionRepo(t, map[string]string{"contains-one.md": containsOne})
	loader := loam.New(goloam.NewTypedRepository[loam.Metadata](repo))

	reg := registry.New(loader)
	require.NoError(t, reg.Load(context.Background()))
	assert.Equal(t, []string{"contains-one"}, reg.Names())
}

func TestLoader_DetectsCollisions(t *testing.T) {
	dir := testutils.WriteDefinitions(t, map[string]string{
		"a.md": flipper,
		"b.md": flipper,
	})
	loader, err := loam.Open(dir)
	require.NoError(t, err)

	_, err = loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "flipper")
}

func TestLoader_InvalidDefinition(t *testing.T) {
	dir := testutils.WriteDefinitions(t, map[string]string{
		"broken.md": "---\nkind: dfa\nstates: [q0]\nstart: q7\n---\n",
	})
	loader, err := loam.Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = loader.List(ctx)
	require.NoError(t, err)
	_, err = loader.Get(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestLoader_Missing(t *testing.T) {
	loader, err := loam.Open(t.TempDir())
	require.NoError(t, err)

	_, err = loader.Get(context.Background(), "nothing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}
