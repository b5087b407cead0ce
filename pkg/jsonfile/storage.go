package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"gitlite-api/internal/repository"
)

// document is the on-disk layout, shared with earlier fallback.json files.
type document struct {
	Repos []*repository.Repository `json:"repos"`
}

// Storage keeps every repository in one JSON file. The file is rewritten in
// full on each change through a temp file and rename, so readers of the file
// never see a half-written document.
type Storage struct {
	path  string
	mu    sync.RWMutex
	repos []*repository.Repository
}

func NewStorage(path string) (*Storage, error) {
	s := &Storage{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}

	zap.L().Info("json file storage ready",
		zap.String("path", path),
		zap.Int("repositories", len(s.repos)),
	)

	return s, nil
}

func (s *Storage) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.repos = []*repository.Repository{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read storage file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse storage file %s: %w", s.path, err)
	}

	s.repos = doc.Repos
	if s.repos == nil {
		s.repos = []*repository.Repository{}
	}

	return nil
}

// flush must be called with the write lock held.
func (s *Storage) flush(repos []*repository.Repository) error {
	raw, err := json.MarshalIndent(document{Repos: repos}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}

	return nil
}

func (s *Storage) indexOf(id string) int {
	return slices.IndexFunc(s.repos, func(r *repository.Repository) bool { return r.Id == id })
}

func (s *Storage) List(_ context.Context) ([]*repository.Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repos := make([]*repository.Repository, len(s.repos))
	for i, repo := range s.repos {
		repos[i] = repo.Clone()
	}

	return repos, nil
}

func (s *Storage) Get(_ context.Context, id string) (*repository.Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return nil, repository.ErrRepositoryNotFound
	}

	return s.repos[idx].Clone(), nil
}

func (s *Storage) Insert(_ context.Context, repo *repository.Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clip(s.repos), repo.Clone())
	if err := s.flush(next); err != nil {
		return err
	}

	s.repos = next
	return nil
}

// Replace upserts: an unknown id is appended.
func (s *Storage) Replace(_ context.Context, repo *repository.Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.repos)
	if idx := s.indexOf(repo.Id); idx >= 0 {
		next[idx] = repo.Clone()
	} else {
		next = append(next, repo.Clone())
	}

	if err := s.flush(next); err != nil {
		return err
	}

	s.repos = next
	return nil
}

func (s *Storage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return repository.ErrRepositoryNotFound
	}

	next := slices.Delete(slices.Clone(s.repos), idx, idx+1)
	if err := s.flush(next); err != nil {
		return err
	}

	s.repos = next
	return nil
}

func (s *Storage) Close() error {
	return nil
}
