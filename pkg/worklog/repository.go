package worklog

import (
	"encoding/json"
	"fmt"

	"github.com/timebridge/timebridge/internal/storage"
)

const stateFileName = "events.json"

// StateRepository persists the sync state between runs. Load on a first run
// (no prior state) returns an empty state, not an error; Save replaces the
// whole state in one write.
type StateRepository interface {
	Load() (State, error)
	Save(state State) error
}

type FileStateRepository struct {
	store storage.Store
}

func NewFileStateRepository(store storage.Store) *FileStateRepository {
	return &FileStateRepository{store: store}
}

func (r *FileStateRepository) Load() (State, error) {
	exists, err := r.store.Exists(stateFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check sync state: %w", err)
	}
	if !exists {
		return State{}, nil
	}
	data, err := r.store.Read(stateFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse sync state: %w", err)
	}
	return state, nil
}

func (r *FileStateRepository) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize sync state: %w", err)
	}
	if err := r.store.Write(stateFileName, data); err != nil {
		return fmt.Errorf("failed to save sync state: %w", err)
	}
	return nil
}
