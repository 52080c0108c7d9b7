package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractSnapshot builds a small two-record NFA snapshot used by the contract suite.
func ContractSnapshot(sessionID string) *domain.Snapshot {
	initial := domain.Configuration{Kind: domain.KindNFA, Active: domain.NewStateSet("q0")}
	after := domain.Configuration{Kind: domain.KindNFA, Active: domain.NewStateSet("q1", "q2"), Position: 1}
	return &domain.Snapshot{
		SessionID: sessionID,
		Automaton: "contract",
		Kind:      domain.KindNFA,
		Input:     "ab",
		Records: []domain.StepRecord{
			{Label: domain.StartLabel, Before: initial, After: initial, Outcome: domain.OutcomeContinue},
			{
				Label:   domain.StepLabel(1),
				Symbol:  "a",
				Before:  initial,
				Edges:   []domain.Edge{{From: "q0", Symbol: "a", To: "q1"}, {From: "q0", Symbol: "a", To: "q2"}},
				After:   after,
				Outcome: domain.OutcomeContinue,
			},
		},
		Index:     1,
		UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := ContractSnapshot(sessionID)

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.Automaton, loaded.Automaton)
		assert.Equal(t, snap.Input, loaded.Input)
		assert.Equal(t, snap.Index, loaded.Index)
		require.Len(t, loaded.Records, 2)
		assert.Equal(t, snap.Records[1].Edges, loaded.Records[1].Edges)
		assert.True(t, snap.Records[1].After.Equal(loaded.Records[1].After), "configuration must survive a round trip")
		assert.True(t, snap.UpdatedAt.Equal(loaded.UpdatedAt))
		assert.Nil(t, loaded.Verdict)
	})

	t.Run("Load Returns A Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Records[1].After.Active[0] = "mutated"
		loaded.Index = 0

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "q1", again.Records[1].After.Active[0])
		assert.Equal(t, 1, again.Index)
	})

	t.Run("Verdict Round Trip", func(t *testing.T) {
		snap := ContractSnapshot(sessionID)
		snap.Verdict = &domain.Result{
			Outcome: domain.OutcomeRejected,
			Reason:  domain.ReasonNoSurvivingStates,
			Symbol:  "b",
			Config:  snap.Records[1].After,
			Index:   1,
		}
		require.NoError(t, store.Save(ctx, sessionID, snap))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Verdict)
		assert.Equal(t, domain.ReasonNoSurvivingStates, loaded.Verdict.Reason)
		assert.True(t, loaded.Finished())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, ContractSnapshot(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, ContractSnapshot(id1))
		_ = store.Save(ctx, id2, ContractSnapshot(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
