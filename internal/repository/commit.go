package repository

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	newId = uuid.NewString
	now   = func() time.Time { return time.Now().UTC() }
)

// appendCommit records the current file set. Commit times never go backwards.
func (r *Repository) appendCommit(message, author string) Commit {
	if author == "" {
		author = AnonymousAuthor
	}

	at := now()
	if n := len(r.Commits); n > 0 && at.Before(r.Commits[n-1].Time) {
		at = r.Commits[n-1].Time
	}

	commit := Commit{
		Id:       newId(),
		Message:  message,
		Snapshot: snapshotFiles(r.Files),
		Author:   author,
		Time:     at,
	}
	r.Commits = append(r.Commits, commit)

	return commit
}

func (r *Repository) findFile(fileId string) int {
	return slices.IndexFunc(r.Files, func(f File) bool { return f.Id == fileId })
}

func (r *Repository) findCommit(commitId string) int {
	return slices.IndexFunc(r.Commits, func(c Commit) bool { return c.Id == commitId })
}

func (r *Repository) AddFile(in AddFileInput) (File, Commit, error) {
	if in.Path == "" {
		return File{}, Commit{}, ErrPathRequired
	}

	file := File{
		Id:      newId(),
		Path:    in.Path,
		Content: in.Content,
	}
	r.Files = append(r.Files, file)

	return file, r.appendCommit(fmt.Sprintf("Added %s", in.Path), in.Author), nil
}

func (r *Repository) UpdateFile(fileId string, in UpdateFileInput) (File, Commit, error) {
	idx := r.findFile(fileId)
	if idx == -1 {
		return File{}, Commit{}, ErrFileNotFound
	}

	file := &r.Files[idx]
	if in.Content != nil {
		file.Content = *in.Content
	}
	if in.Path != "" {
		file.Path = in.Path
	}

	message := in.Message
	if message == "" {
		message = fmt.Sprintf("Edited %s", file.Path)
	}

	return *file, r.appendCommit(message, in.Author), nil
}

// DeleteFile removes every file with the given id. An unknown id still
// produces a commit recording the unchanged file set.
func (r *Repository) DeleteFile(fileId, author string) Commit {
	r.Files = slices.DeleteFunc(r.Files, func(f File) bool { return f.Id == fileId })

	return r.appendCommit("Deleted file", author)
}

// RevertTo replaces the live files with a copy of the commit's snapshot and
// records that as a new commit. History is never truncated.
func (r *Repository) RevertTo(commitId, author string) (Commit, error) {
	idx := r.findCommit(commitId)
	if idx == -1 {
		return Commit{}, ErrCommitNotFound
	}

	r.Files = snapshotFiles(r.Commits[idx].Snapshot)

	return r.appendCommit(fmt.Sprintf("Reverted to %s", commitId), author), nil
}

// AddCollaborator appends without de-duplicating user ids.
func (r *Repository) AddCollaborator(in ShareInput) (Collaborator, error) {
	if in.UserId == "" {
		return Collaborator{}, ErrUserIdRequired
	}

	access := in.Access
	if access == "" {
		access = AccessView
	}
	if !access.IsValid() {
		return Collaborator{}, ErrInvalidAccessLevel
	}

	collaborator := Collaborator{UserId: in.UserId, Access: access}
	r.Collaborators = append(r.Collaborators, collaborator)

	return collaborator, nil
}

func (r *Repository) Star() int {
	r.Stars++
	return r.Stars
}
