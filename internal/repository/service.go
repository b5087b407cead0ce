package repository

import (
	"context"

	"go.uber.org/zap"

	"gitlite-api/pkg/auth"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=repository

type Service interface {
	ListRepositories(ctx context.Context, query string) ([]*Repository, error)
	GetRepository(ctx context.Context, id string) (*Repository, error)
	CreateRepository(ctx context.Context, in CreateRepositoryInput) (*Repository, error)
	DeleteRepository(ctx context.Context, id string) error
	ListFiles(ctx context.Context, id string) ([]File, error)
	AddFile(ctx context.Context, id string, in AddFileInput) (*File, *Commit, error)
	UpdateFile(ctx context.Context, id, fileId string, in UpdateFileInput) (*File, *Commit, error)
	DeleteFile(ctx context.Context, id, fileId, author string) (*Commit, error)
	ListCommits(ctx context.Context, id string) ([]Commit, error)
	Revert(ctx context.Context, id string, in RevertInput) (*Commit, error)
	Share(ctx context.Context, id string, in ShareInput) (*Collaborator, error)
	Star(ctx context.Context, id string) (int, error)
}

type service struct {
	store *Store
}

func NewService(store *Store) Service {
	return &service{
		store: store,
	}
}

// resolveAuthor prefers the explicit author, then the caller's display name.
func resolveAuthor(ctx context.Context, author string) string {
	if author != "" {
		return author
	}
	if name, ok := auth.GetUserName(ctx); ok && name != "" {
		return name
	}
	return AnonymousAuthor
}

func (s *service) ListRepositories(ctx context.Context, query string) ([]*Repository, error) {
	return s.store.Search(ctx, query)
}

func (s *service) GetRepository(ctx context.Context, id string) (*Repository, error) {
	return s.store.Get(ctx, id)
}

func (s *service) CreateRepository(ctx context.Context, in CreateRepositoryInput) (*Repository, error) {
	if in.Owner == nil {
		if userId, ok := auth.GetUserID(ctx); ok {
			in.Owner = &userId
		}
	}

	repo, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	zap.L().Info("repository created",
		zap.String("repositoryId", repo.Id),
		zap.String("name", repo.Name),
		zap.Bool("isPrivate", repo.IsPrivate),
	)

	return repo, nil
}

func (s *service) DeleteRepository(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	zap.L().Info("repository deleted", zap.String("repositoryId", id))
	return nil
}

func (s *service) ListFiles(ctx context.Context, id string) ([]File, error) {
	repo, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return repo.Files, nil
}

func (s *service) AddFile(ctx context.Context, id string, in AddFileInput) (*File, *Commit, error) {
	in.Author = resolveAuthor(ctx, in.Author)

	var (
		file   File
		commit Commit
	)
	_, err := s.store.Mutate(ctx, id, func(repo *Repository) error {
		var err error
		file, commit, err = repo.AddFile(in)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	logCommit(id, commit)
	return &file, &commit, nil
}

func (s *service) UpdateFile(ctx context.Context, id, fileId string, in UpdateFileInput) (*File, *Commit, error) {
	in.Author = resolveAuthor(ctx, in.Author)

	var (
		file   File
		commit Commit
	)
	_, err := s.store.Mutate(ctx, id, func(repo *Repository) error {
		var err error
		file, commit, err = repo.UpdateFile(fileId, in)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	logCommit(id, commit)
	return &file, &commit, nil
}

func (s *service) DeleteFile(ctx context.Context, id, fileId, author string) (*Commit, error) {
	author = resolveAuthor(ctx, author)

	var commit Commit
	_, err := s.store.Mutate(ctx, id, func(repo *Repository) error {
		commit = repo.DeleteFile(fileId, author)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCommit(id, commit)
	return &commit, nil
}

func (s *service) ListCommits(ctx context.Context, id string) ([]Commit, error) {
	repo, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return repo.Commits, nil
}

func (s *service) Revert(ctx context.Context, id string, in RevertInput) (*Commit, error) {
	author := resolveAuthor(ctx, in.Author)

	var commit Commit
	_, err := s.store.Mutate(ctx, id, func(repo *Repository) error {
		var err error
		commit, err = repo.RevertTo(in.CommitId, author)
		return err
	})
	if err != nil {
		return nil, err
	}

	logCommit(id, commit)
	return &commit, nil
}

func (s *service) Share(ctx context.Context, id string, in ShareInput) (*Collaborator, error) {
	var collaborator Collaborator
	_, err := s.store.Mutate(ctx, id, func(repo *Repository) error {
		var err error
		collaborator, err = repo.AddCollaborator(in)
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("collaborator added",
		zap.String("repositoryId", id),
		zap.String("userId", collaborator.UserId),
		zap.String("access", string(collaborator.Access)),
	)

	return &collaborator, nil
}

func (s *service) Star(ctx context.Context, id string) (int, error) {
	var stars int
	_, err := s.store.Mutate(ctx, id, func(repo *Repository) error {
		stars = repo.Star()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return stars, nil
}

func logCommit(repositoryId string, commit Commit) {
	zap.L().Info("commit appended",
		zap.String("repositoryId", repositoryId),
		zap.String("commitId", commit.Id),
		zap.String("message", commit.Message),
		zap.String("author", commit.Author),
		zap.Int("files", len(commit.Snapshot)),
	)
}
