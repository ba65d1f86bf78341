package worklog

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Syncer reconciles aggregated entries against the persisted sync state:
// for every ticket id of every entry it decides skip, update or create,
// drives the remote client accordingly and persists the new state once at
// the end of the run.
type Syncer interface {
	Sync(ctx context.Context, entries []Entry) error
}

type SyncerImpl struct {
	repo   StateRepository
	client Client
}

func NewSyncer(repo StateRepository, client Client) *SyncerImpl {
	return &SyncerImpl{repo: repo, client: client}
}

// Sync aborts on the first remote error without saving: a broken credential
// must not silently skip entries, and an unsaved state keeps the next run
// able to repeat the work.
func (s *SyncerImpl) Sync(ctx context.Context, entries []Entry) error {
	state, err := s.repo.Load()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fresh := entry.Worklogs()
		record, seen := state[entry.EventID]

		for i := range fresh {
			w := &fresh[i]

			if seen {
				if saved, found := findWorklog(record.Worklogs, w.ID); found {
					if saved.Description != w.Description || saved.TimeSpentSeconds != w.TimeSpentSeconds {
						log.Infof("updating worklog %s: %s", w.ID, w.Description)
						remoteID, err := s.client.Update(ctx, saved.RemoteWorklogID, *w)
						if err != nil {
							return fmt.Errorf("failed to update worklog for %s: %w", w.ID, err)
						}
						w.RemoteWorklogID = remoteID
					} else {
						log.Debugf("worklog %s unchanged: %s", w.ID, w.Description)
						w.RemoteWorklogID = saved.RemoteWorklogID
					}
					continue
				}
			}

			log.Infof("creating worklog %s: %s", w.ID, w.Description)
			remoteID, err := s.client.Create(ctx, *w)
			if err != nil {
				return fmt.Errorf("failed to create worklog for %s: %w", w.ID, err)
			}
			w.RemoteWorklogID = remoteID
		}

		state[entry.EventID] = EventRecord{Worklogs: fresh}
	}

	return s.repo.Save(state)
}

// findWorklog returns the first stored worklog with the given ticket id.
// Duplicated ids within one event all match the first stored occurrence.
func findWorklog(worklogs []Worklog, id string) (Worklog, bool) {
	for _, w := range worklogs {
		if w.ID == id {
			return w, true
		}
	}
	return Worklog{}, false
}
