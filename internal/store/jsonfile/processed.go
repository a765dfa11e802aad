// Package jsonfile implements the processed-record store on top of a
// single JSON file with atomic writes.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/recur/internal/core/processed"
)

// stateFile is the root JSON structure stored on disk. The format is
// load-bearing: ids written by one version must stay readable by the next.
type stateFile struct {
	Records     []processed.Record `json:"processed_tasks"`
	LastUpdated time.Time          `json:"last_updated"`
}

// ProcessedStore implements processed.Store using a JSON file.
//
// The store assumes a single writer. Every Record call rewrites the file
// synchronously so a crash between candidates cannot lose earlier records.
type ProcessedStore struct {
	path string
	mu   sync.RWMutex
}

// NewProcessedStore creates a store backed by the JSON file at path.
func NewProcessedStore(path string) *ProcessedStore {
	return &ProcessedStore{path: path}
}

// Contains reports whether id has been recorded.
func (s *ProcessedStore) Contains(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file := s.load()
	for _, rec := range file.Records {
		if rec.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Record adds rec and flushes to disk before returning. Re-recording an
// existing id leaves the file unchanged.
func (s *ProcessedStore) Record(ctx context.Context, rec processed.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	for _, have := range file.Records {
		if have.ID == rec.ID {
			return nil
		}
	}

	file.Records = append(file.Records, rec)
	return s.save(file)
}

// List returns all records, newest first.
func (s *ProcessedStore) List(ctx context.Context) ([]processed.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file := s.load()
	out := append([]processed.Record(nil), file.Records...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].DuplicatedAt.After(out[j].DuplicatedAt)
	})
	return out, nil
}

// Prune removes records older than cutoff and returns the removed count.
func (s *ProcessedStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	kept := file.Records[:0]
	for _, rec := range file.Records {
		if !rec.DuplicatedAt.Before(cutoff) {
			kept = append(kept, rec)
		}
	}

	removed := len(file.Records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	file.Records = kept
	if err := s.save(file); err != nil {
		return 0, err
	}
	return removed, nil
}

// load reads the state file. Missing or unreadable state degrades to an
// empty set: the worst case is re-duplicating a task, which beats refusing
// to run at all.
func (s *ProcessedStore) load() stateFile {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("read processed state, starting empty")
		}
		return stateFile{}
	}

	if len(data) == 0 {
		return stateFile{}
	}

	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("corrupt processed state, starting empty")
		return stateFile{}
	}

	return file
}

// save writes the state file atomically.
func (s *ProcessedStore) save(file stateFile) error {
	file.LastUpdated = time.Now().UTC()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}

	return os.Rename(tmp, s.path)
}
