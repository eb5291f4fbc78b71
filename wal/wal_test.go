package wal

import (
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yairfalse/virta/types"
)

func TestWAL_AppendAndReplay(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, w.Append(EntryPassStarted, "", map[string]string{"service": "payments", "stage": "dev"}))
	require.NoError(t, w.Append(EntryDecided, "FooLogGroup", types.Decision{
		Action:     types.ActionSubscribe,
		ResourceID: "FooLogGroup",
		LogGroup:   "/aws/lambda/foo",
		Reason:     "log group eligible for forwarding",
	}))
	require.NoError(t, w.Append(EntryPassCompleted, "", map[string]int{"planned": 1}))
	require.NoError(t, w.Close())

	var entries []*Entry
	err = Replay(dir, time.Time{}, func(e *Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, EntryPassStarted, entries[0].Type)
	assert.Equal(t, int64(1), entries[0].Sequence)
	assert.Equal(t, EntryDecided, entries[1].Type)
	assert.Equal(t, "FooLogGroup", entries[1].ResourceID)

	var decision types.Decision
	require.NoError(t, json.Unmarshal(entries[1].Data, &decision))
	assert.Equal(t, types.ActionSubscribe, decision.Action)
	assert.Equal(t, "/aws/lambda/foo", decision.LogGroup)
}

func TestWAL_AppendError(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, w.AppendError(EntryFailed, "FooLogGroup", nil, assert.AnError))
	require.NoError(t, w.Close())

	files, err := filepath.Glob(filepath.Join(dir, "virta-*.wal"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	reader, err := NewReader(files[0])
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	entry, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, EntryFailed, entry.Type)
	assert.Equal(t, assert.AnError.Error(), entry.Error)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReplay_Since(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, w.Append(EntryDecided, "Old", nil))
	require.NoError(t, w.Close())

	var count int
	err = Replay(dir, time.Now().Add(time.Hour), func(e *Entry) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, count)
}
