package worklog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timebridge/timebridge/internal/storage"
)

func TestFileStateRepository(t *testing.T) {
	t.Run("first run loads an empty state", func(t *testing.T) {
		repo := NewFileStateRepository(storage.NewFileStore(t.TempDir(), "alice"))
		state, err := repo.Load()
		require.NoError(t, err)
		assert.Empty(t, state)
	})

	t.Run("save then load round-trips the state", func(t *testing.T) {
		repo := NewFileStateRepository(storage.NewFileStore(t.TempDir(), "alice"))
		state := State{
			"evt-1": {Worklogs: []Worklog{{
				ID:               "ABC-1",
				Description:      "work",
				StartAt:          "2024-03-04T00:00:00.000+0000",
				TimeSpentSeconds: 1800,
				RemoteWorklogID:  "10001",
			}}},
		}
		require.NoError(t, repo.Save(state))

		loaded, err := repo.Load()
		require.NoError(t, err)
		assert.Equal(t, state, loaded)
	})

	t.Run("save replaces the previous state completely", func(t *testing.T) {
		repo := NewFileStateRepository(storage.NewFileStore(t.TempDir(), "alice"))
		require.NoError(t, repo.Save(State{"evt-1": {}, "evt-2": {}}))
		require.NoError(t, repo.Save(State{"evt-3": {}}))

		loaded, err := repo.Load()
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
		assert.Contains(t, loaded, "evt-3")
	})

	t.Run("corrupt state file is an error", func(t *testing.T) {
		store := storage.NewFileStore(t.TempDir(), "alice")
		require.NoError(t, store.Write("events.json", []byte("not json")))

		repo := NewFileStateRepository(store)
		_, err := repo.Load()
		assert.ErrorContains(t, err, "failed to parse sync state")
	})
}
