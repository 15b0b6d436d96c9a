package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-forecast/internal/logger"
)

// FileStore keeps settings in a JSON object on disk
type FileStore struct {
	path  string
	mu    sync.RWMutex
	data  map[string]string
	audit *logger.AuditLogger
}

// NewFileStore loads path; a missing or corrupt file yields an empty store
func NewFileStore(path string, log *logrus.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("settings file path is required")
	}

	s := &FileStore{
		path:  path,
		data:  make(map[string]string),
		audit: logger.NewAuditLogger(log),
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			s.audit.LogSettingsCorrupt(BackendFile, path, err)
			s.data = make(map[string]string)
		}
	}
	if s.data == nil {
		// a literal "null" document
		s.data = make(map[string]string)
	}
	return s, nil
}

// Get returns the value stored under key
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key and rewrites the file
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, existed := s.data[key]
	s.data[key] = value
	if err := s.persistLocked(); err != nil {
		if existed {
			s.data[key] = old
		} else {
			delete(s.data, key)
		}
		return err
	}

	s.audit.LogSettingChanged(BackendFile, key, old, value)
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *FileStore) Delete(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, existed := s.data[key]
	if !existed {
		return nil
	}
	delete(s.data, key)
	if err := s.persistLocked(); err != nil {
		s.data[key] = old
		return err
	}

	s.audit.LogSettingDeleted(BackendFile, key)
	return nil
}

// All returns a copy of every stored setting
func (s *FileStore) All(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, nil
}

// Close is a no-op; every write is already on disk
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) auditLog() *logger.AuditLogger {
	return s.audit
}

// persistLocked writes to a temp file and renames it over the target
func (s *FileStore) persistLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close settings file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
