package repository

import (
	"context"
	"strings"
)

// Store maps repository ids to aggregates. All file, commit, collaborator
// and star changes go through Mutate, which serializes writers per id.
// Writes run detached from the caller's cancellation: once started, a
// mutation completes or fails on its own.
type Store struct {
	storage Storage
	locks   *keyedMutex
}

func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		locks:   newKeyedMutex(),
	}
}

func (s *Store) List(ctx context.Context) ([]*Repository, error) {
	return s.storage.List(ctx)
}

// Search matches query case-insensitively against "name description".
// An empty query returns every repository.
func (s *Store) Search(ctx context.Context, query string) ([]*Repository, error) {
	repos, err := s.storage.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return repos, nil
	}

	needle := strings.ToLower(query)
	matches := make([]*Repository, 0, len(repos))
	for _, repo := range repos {
		haystack := strings.ToLower(repo.Name + " " + repo.Description)
		if strings.Contains(haystack, needle) {
			matches = append(matches, repo)
		}
	}

	return matches, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Repository, error) {
	return s.storage.Get(ctx, id)
}

func (s *Store) Create(ctx context.Context, in CreateRepositoryInput) (*Repository, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	repo := &Repository{
		Id:          newId(),
		Name:        in.Name,
		Description: in.Description,
		IsPrivate:   in.IsPrivate,
		Owner:       in.Owner,
		CreatedAt:   now(),
	}
	repo.normalize()

	if err := s.storage.Insert(context.WithoutCancel(ctx), repo); err != nil {
		return nil, err
	}

	return repo, nil
}

// Mutate loads one repository, applies fn and stores the result. When fn
// fails nothing is written.
func (s *Store) Mutate(ctx context.Context, id string, fn func(repo *Repository) error) (*Repository, error) {
	ctx = context.WithoutCancel(ctx)

	unlock := s.locks.Lock(id)
	defer unlock()

	repo, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(repo); err != nil {
		return nil, err
	}

	repo.normalize()
	if err := s.storage.Replace(ctx, repo); err != nil {
		return nil, err
	}

	return repo, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.storage.Delete(context.WithoutCancel(ctx), id)
}
