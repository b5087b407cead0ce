package repository

import (
	"context"
	"sync"
)

// memoryStorage is a Storage backed by a map, used to exercise the store
// without a database.
type memoryStorage struct {
	mu    sync.RWMutex
	order []string
	repos map[string]*Repository
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{repos: make(map[string]*Repository)}
}

func (m *memoryStorage) List(_ context.Context) ([]*Repository, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repos := make([]*Repository, 0, len(m.order))
	for _, id := range m.order {
		repos = append(repos, m.repos[id].Clone())
	}
	return repos, nil
}

func (m *memoryStorage) Get(_ context.Context, id string) (*Repository, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repo, ok := m.repos[id]
	if !ok {
		return nil, ErrRepositoryNotFound
	}
	return repo.Clone(), nil
}

func (m *memoryStorage) Insert(_ context.Context, repo *Repository) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = append(m.order, repo.Id)
	m.repos[repo.Id] = repo.Clone()
	return nil
}

func (m *memoryStorage) Replace(_ context.Context, repo *Repository) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.repos[repo.Id]; !ok {
		m.order = append(m.order, repo.Id)
	}
	m.repos[repo.Id] = repo.Clone()
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.repos[id]; !ok {
		return ErrRepositoryNotFound
	}
	delete(m.repos, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryStorage) Close() error {
	return nil
}

func strPtr(s string) *string {
	return &s
}

func newTestRepository() *Repository {
	repo := &Repository{
		Id:        newId(),
		Name:      "demo",
		CreatedAt: now(),
	}
	repo.normalize()
	return repo
}
