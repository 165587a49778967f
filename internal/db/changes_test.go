package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func strPtr(s string) *string {
	return &s
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	database, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, database.Path())
	require.NoError(t, database.Close())

	// reopening must not re-run applied migrations
	database, err = New(path)
	require.NoError(t, err)
	require.NoError(t, database.Close())
}

func TestChanges(t *testing.T) {
	database := openTestDB(t)
	runID := NewRunID()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := &Change{
		RunID:     runID,
		Device:    "dell-wmi-sysman",
		Attribute: "WakeOnLan",
		Previous:  strPtr("Disabled"),
		Requested: "Enabled",
		Resulting: strPtr("Enabled"),
		Timestamp: base,
	}
	second := &Change{
		RunID:     runID,
		Device:    "dell-wmi-sysman",
		Attribute: "AssetTag",
		Requested: "ABC",
		Timestamp: base.Add(time.Minute),
	}
	other := &Change{
		RunID:     runID,
		Device:    "thinklmi",
		Attribute: "WakeOnLan",
		Requested: "Enabled",
		Timestamp: base.Add(2 * time.Minute),
	}

	for _, c := range []*Change{first, second, other} {
		require.NoError(t, database.RecordChange(c))
		assert.NotZero(t, c.ID)
	}

	t.Run("test all changes of a device newest first", func(t *testing.T) {
		changes, err := database.GetChanges("dell-wmi-sysman", "", 0)
		require.NoError(t, err)
		require.Len(t, changes, 2)
		assert.Equal(t, "AssetTag", changes[0].Attribute)
		assert.Nil(t, changes[0].Previous)
		assert.Nil(t, changes[0].Resulting)
		assert.Equal(t, "WakeOnLan", changes[1].Attribute)
		assert.Equal(t, "Disabled", *changes[1].Previous)
		assert.Equal(t, "Enabled", *changes[1].Resulting)
		assert.Equal(t, runID, changes[1].RunID)
		assert.True(t, base.Equal(changes[1].Timestamp))
	})

	t.Run("test filter by attribute", func(t *testing.T) {
		changes, err := database.GetChanges("dell-wmi-sysman", "WakeOnLan", 10)
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, first.ID, changes[0].ID)
	})

	t.Run("test limit", func(t *testing.T) {
		changes, err := database.GetChanges("dell-wmi-sysman", "", 1)
		require.NoError(t, err)
		assert.Len(t, changes, 1)
	})

	t.Run("test unknown device", func(t *testing.T) {
		changes, err := database.GetChanges("absent", "", 10)
		require.NoError(t, err)
		assert.Empty(t, changes)
	})
}

func TestRecordChangeSetsTimestamp(t *testing.T) {
	database := openTestDB(t)

	c := &Change{RunID: NewRunID(), Device: "d", Attribute: "a", Requested: "v"}
	require.NoError(t, database.RecordChange(c))
	assert.False(t, c.Timestamp.IsZero())
}
