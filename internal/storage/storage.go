package storage

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Store gives access to the per-account files (credentials, tokens, sync
// state) laid out as users/<account>/<file> under a common root.
type Store interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Exists(name string) (bool, error)
}

type FileStore struct {
	root    string
	account string
}

func NewFileStore(root string, account string) *FileStore {
	return &FileStore{root: root, account: account}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.root, "users", s.account, name)
}

func (s *FileStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (s *FileStore) Exists(name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Write replaces the file content atomically: the data is written to a
// temporary file in the same directory and renamed over the target, so a
// crash mid-write never leaves a truncated file behind.
func (s *FileStore) Write(name string, data []byte) error {
	target := s.path(name)
	if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	log.Debugf("stored %s (%d bytes)", target, len(data))
	return nil
}
