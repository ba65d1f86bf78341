package worklog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(eventID string, ids []string, description string, minutes float64) Entry {
	return Entry{
		EventID:     eventID,
		TicketIDs:   ids,
		Description: description,
		StartTime:   time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
		Duration:    minutes,
	}
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("new ticket id triggers one create and persists the remote id", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{}
		syncer := NewSyncer(repo, client)

		err := syncer.Sync(ctx, []Entry{testEntry("evt-1", []string{"ABC-1"}, "work", 60)})
		require.NoError(t, err)

		require.Len(t, client.Calls, 1)
		assert.Equal(t, "create", client.Calls[0].Op)

		record := repo.State["evt-1"]
		require.Len(t, record.Worklogs, 1)
		assert.Equal(t, "remote-1", record.Worklogs[0].RemoteWorklogID)
		assert.Equal(t, 3600.0, record.Worklogs[0].TimeSpentSeconds)
	})

	t.Run("second run with unchanged events makes no remote calls", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{}
		syncer := NewSyncer(repo, client)
		entries := []Entry{testEntry("evt-1", []string{"ABC-1", "ABC-2"}, "work", 60)}

		require.NoError(t, syncer.Sync(ctx, entries))
		callsAfterFirstRun := len(client.Calls)

		require.NoError(t, syncer.Sync(ctx, entries))
		assert.Equal(t, callsAfterFirstRun, len(client.Calls))
	})

	t.Run("skip keeps the stored remote worklog id", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{}
		syncer := NewSyncer(repo, client)
		entries := []Entry{testEntry("evt-1", []string{"ABC-1"}, "work", 60)}

		require.NoError(t, syncer.Sync(ctx, entries))
		require.NoError(t, syncer.Sync(ctx, entries))

		record := repo.State["evt-1"]
		require.Len(t, record.Worklogs, 1)
		assert.Equal(t, "remote-1", record.Worklogs[0].RemoteWorklogID)
	})

	t.Run("changed description triggers exactly one update and overwrites the record", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{}
		syncer := NewSyncer(repo, client)

		require.NoError(t, syncer.Sync(ctx, []Entry{testEntry("evt-1", []string{"ABC-1"}, "old", 60)}))
		client.Calls = nil

		require.NoError(t, syncer.Sync(ctx, []Entry{testEntry("evt-1", []string{"ABC-1"}, "new", 60)}))

		require.Len(t, client.Calls, 1)
		assert.Equal(t, "update", client.Calls[0].Op)
		assert.Equal(t, "remote-1", client.Calls[0].RemoteID)
		assert.Equal(t, "new", repo.State["evt-1"].Worklogs[0].Description)
	})

	t.Run("changed duration triggers an update", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{}
		syncer := NewSyncer(repo, client)

		require.NoError(t, syncer.Sync(ctx, []Entry{testEntry("evt-1", []string{"ABC-1"}, "work", 60)}))
		client.Calls = nil

		require.NoError(t, syncer.Sync(ctx, []Entry{testEntry("evt-1", []string{"ABC-1"}, "work", 90)}))

		require.Len(t, client.Calls, 1)
		assert.Equal(t, "update", client.Calls[0].Op)
		assert.Equal(t, 90*60.0, repo.State["evt-1"].Worklogs[0].TimeSpentSeconds)
	})

	t.Run("new ticket id on a known event creates only the new one", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{}
		syncer := NewSyncer(repo, client)

		require.NoError(t, syncer.Sync(ctx, []Entry{testEntry("evt-1", []string{"ABC-1"}, "work", 60)}))
		client.Calls = nil

		entry := testEntry("evt-1", []string{"ABC-1", "ABC-2"}, "work", 60)
		require.NoError(t, syncer.Sync(ctx, []Entry{entry}))

		// the split changed ABC-1's seconds (60 -> 30 minutes), so one
		// update plus one create for the new id
		require.Len(t, client.Calls, 2)
		assert.Equal(t, "update", client.Calls[0].Op)
		assert.Equal(t, "ABC-1", client.Calls[0].Worklog.ID)
		assert.Equal(t, "create", client.Calls[1].Op)
		assert.Equal(t, "ABC-2", client.Calls[1].Worklog.ID)
	})

	t.Run("remote failure aborts the run without saving", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{Err: errors.New("invalid credentials")}
		syncer := NewSyncer(repo, client)

		entries := []Entry{
			testEntry("evt-1", []string{"ABC-1"}, "work", 60),
			testEntry("evt-2", []string{"ABC-2"}, "more work", 60),
		}
		err := syncer.Sync(ctx, entries)
		assert.Error(t, err)
		assert.Empty(t, repo.Saved)
	})

	t.Run("entries are processed in order and state saved once", func(t *testing.T) {
		repo := &StubStateRepository{}
		client := &StubClient{}
		syncer := NewSyncer(repo, client)

		entries := []Entry{
			testEntry("evt-1", []string{"ABC-1"}, "first", 30),
			testEntry("evt-2", []string{"ABC-2"}, "second", 30),
		}
		require.NoError(t, syncer.Sync(ctx, entries))

		require.Len(t, client.Calls, 2)
		assert.Equal(t, "first", client.Calls[0].Worklog.Description)
		assert.Equal(t, "second", client.Calls[1].Worklog.Description)
		assert.Len(t, repo.Saved, 1)
	})
}
