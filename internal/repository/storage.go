package repository

import "context"

//go:generate mockgen -source=storage.go -destination=storage_mock.go -package=repository

// Storage persists whole repository documents by id. Get and List must hand
// back copies the caller may modify freely, and Replace must swap the stored
// document in one step. Missing ids yield ErrRepositoryNotFound.
type Storage interface {
	List(ctx context.Context) ([]*Repository, error)
	Get(ctx context.Context, id string) (*Repository, error)
	Insert(ctx context.Context, repo *Repository) error
	Replace(ctx context.Context, repo *Repository) error
	Delete(ctx context.Context, id string) error
	Close() error
}
