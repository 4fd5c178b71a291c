package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/latoulicious/boosterbot/pkg/booster"
	"github.com/latoulicious/boosterbot/pkg/logging"
)

// FileStore keeps every record in memory and rewrites the whole JSON file
// on each Save. The file maps user id to {"collection": ..., "cooldown": ms}.
type FileStore struct {
	path    string
	mu      sync.Mutex
	records map[string]*booster.PlayerRecord
	logger  logging.Logger
}

// OpenFileStore loads path. A missing or empty file starts an empty store;
// a file that cannot be parsed is an error, so it is never overwritten.
func OpenFileStore(path string, logger logging.Logger) (*FileStore, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &FileStore{
		path:    path,
		records: make(map[string]*booster.PlayerRecord),
		logger:  logger,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("Store file not found, starting empty", map[string]interface{}{"path": path})
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.records); err != nil {
			return nil, fmt.Errorf("failed to parse store %s: %w", path, err)
		}
	}
	for id, rec := range s.records {
		if rec == nil {
			delete(s.records, id)
			continue
		}
		if rec.Collection == nil {
			rec.Collection = booster.Collection{}
		}
	}

	logger.Info("Store loaded", map[string]interface{}{
		"path":    path,
		"players": len(s.records),
	})
	return s, nil
}

// Load returns a copy of the stored record
func (s *FileStore) Load(userID string) (*booster.PlayerRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, false, nil
	}
	return rec.Clone(), true, nil
}

// Save stores rec and rewrites the file. If the write fails the in-memory
// state is rolled back so it keeps matching the file.
func (s *FileStore) Save(userID string, rec *booster.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.records[userID]
	s.records[userID] = rec.Clone()

	if err := s.flush(); err != nil {
		if existed {
			s.records[userID] = previous
		} else {
			delete(s.records, userID)
		}
		s.logger.Error("Failed to write store file", err, map[string]interface{}{
			"path":    s.path,
			"user_id": userID,
		})
		return err
	}
	return nil
}

// Len returns the number of stored users
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// flush replaces the file through a temp file and rename; callers hold mu
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
