package repository

import "time"

// AnonymousAuthor is recorded on commits whose author is unknown.
const AnonymousAuthor = "anon"

type AccessLevel string

const (
	AccessView  AccessLevel = "view"
	AccessWrite AccessLevel = "write"
)

func (a AccessLevel) IsValid() bool {
	return a == AccessView || a == AccessWrite
}

type File struct {
	Id      string `json:"id"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

type Commit struct {
	Id       string    `json:"id"`
	Message  string    `json:"message"`
	Snapshot []File    `json:"snapshot"`
	Author   string    `json:"author"`
	Time     time.Time `json:"time"`
}

// Collaborator access levels are recorded but not enforced.
type Collaborator struct {
	UserId string      `json:"userId"`
	Access AccessLevel `json:"access"`
}

// Repository is the aggregate persisted as one document per id.
type Repository struct {
	Id            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	IsPrivate     bool           `json:"isPrivate"`
	Owner         *string        `json:"owner"`
	Collaborators []Collaborator `json:"collaborators"`
	Files         []File         `json:"files"`
	Commits       []Commit       `json:"commits"`
	CreatedAt     time.Time      `json:"createdAt"`
	Stars         int            `json:"stars"`
}

// Clone returns a deep copy that shares no slices with r.
func (r *Repository) Clone() *Repository {
	clone := *r
	if r.Owner != nil {
		owner := *r.Owner
		clone.Owner = &owner
	}

	clone.Collaborators = append(make([]Collaborator, 0, len(r.Collaborators)), r.Collaborators...)
	clone.Files = snapshotFiles(r.Files)
	clone.Commits = make([]Commit, len(r.Commits))
	for i, c := range r.Commits {
		c.Snapshot = snapshotFiles(c.Snapshot)
		clone.Commits[i] = c
	}

	return &clone
}

// snapshotFiles copies files by value. File holds no references, so copying
// the slice is a deep copy.
func snapshotFiles(files []File) []File {
	return append(make([]File, 0, len(files)), files...)
}

// normalize replaces nil slices so documents always encode as arrays.
func (r *Repository) normalize() {
	if r.Collaborators == nil {
		r.Collaborators = []Collaborator{}
	}
	if r.Files == nil {
		r.Files = []File{}
	}
	if r.Commits == nil {
		r.Commits = []Commit{}
	}
	for i := range r.Commits {
		if r.Commits[i].Snapshot == nil {
			r.Commits[i].Snapshot = []File{}
		}
	}
}

type CreateRepositoryInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Owner       *string `json:"owner"`
	IsPrivate   bool    `json:"isPrivate"`
}

type AddFileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// UpdateFileInput leaves content untouched when Content is nil and the path
// untouched when Path is empty.
type UpdateFileInput struct {
	Path    string  `json:"path"`
	Content *string `json:"content"`
	Author  string  `json:"author"`
	Message string  `json:"message"`
}

type RevertInput struct {
	CommitId string `json:"commitId"`
	Author   string `json:"author"`
}

type ShareInput struct {
	UserId string      `json:"userId"`
	Access AccessLevel `json:"access"`
}
