package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/virta/types"
)

func TestPassStore_RecordAndList(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	first, err := store.RecordPass(PassRecord{
		Service: "payments",
		Stage:   "dev",
		Planned: 2,
		Decisions: []types.Decision{
			{Action: types.ActionSubscribe, ResourceID: "FooLogGroup", Reason: "eligible"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := store.RecordPass(PassRecord{
		Service:  "payments",
		Stage:    "dev",
		Skipped:  1,
		Warnings: []string{"log group /aws/lambda/foo already has 2 subscription filters, skipping"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	records, err := store.ListPasses()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(1), records[0].Sequence)
	assert.Equal(t, 2, records[0].Planned)
	assert.False(t, records[0].Timestamp.IsZero())
	assert.Equal(t, int64(2), records[1].Sequence)
	assert.Len(t, records[1].Warnings, 1)
}

func TestPassStore_LastPass(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, found, err := store.LastPass()
	require.NoError(t, err)
	assert.False(t, found)

	_, err = store.RecordPass(PassRecord{Service: "payments", Stage: "dev"})
	require.NoError(t, err)
	_, err = store.RecordPass(PassRecord{Service: "payments", Stage: "prod"})
	require.NoError(t, err)

	last, found, err := store.LastPass()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(2), last.Sequence)
	assert.Equal(t, "prod", last.Stage)
}

func TestPassStore_SequenceSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	_, err = store.RecordPass(PassRecord{Service: "payments", Stage: "dev"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	sequence, err := reopened.RecordPass(PassRecord{Service: "payments", Stage: "dev"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), sequence)
}
