package repository

import (
	"net/http"

	"gitlite-api/pkg/httpjson"
)

type handler struct {
	service      Service
	maxBodyBytes int64
}

func NewHandler(service Service, maxBodyBytes int64) *handler {
	return &handler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
	}
}

type fileCommitResponse struct {
	File   *File   `json:"file"`
	Commit *Commit `json:"commit"`
}

type okCommitResponse struct {
	Ok     bool    `json:"ok"`
	Commit *Commit `json:"commit"`
}

type shareResponse struct {
	Ok           bool          `json:"ok"`
	Collaborator *Collaborator `json:"collaborator"`
}

type starResponse struct {
	Stars int `json:"stars"`
}

func (h *handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/repos", h.listRepositories)
	mux.HandleFunc("POST /api/repos", h.createRepository)
	mux.HandleFunc("GET /api/repos/{id}", h.getRepository)
	mux.HandleFunc("DELETE /api/repos/{id}", h.deleteRepository)
	mux.HandleFunc("GET /api/repos/{id}/files", h.listFiles)
	mux.HandleFunc("POST /api/repos/{id}/files", h.addFile)
	mux.HandleFunc("PUT /api/repos/{id}/files/{fileId}", h.updateFile)
	mux.HandleFunc("DELETE /api/repos/{id}/files/{fileId}", h.deleteFile)
	mux.HandleFunc("GET /api/repos/{id}/commits", h.listCommits)
	mux.HandleFunc("POST /api/repos/{id}/revert", h.revert)
	mux.HandleFunc("POST /api/repos/{id}/share", h.share)
	mux.HandleFunc("POST /api/repos/{id}/star", h.star)
}

func (h *handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := h.service.ListRepositories(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	if repos == nil {
		repos = []*Repository{}
	}
	httpjson.Write(w, http.StatusOK, repos)
}

func (h *handler) createRepository(w http.ResponseWriter, r *http.Request) {
	var in CreateRepositoryInput
	if err := httpjson.Decode(w, r, h.maxBodyBytes, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	repo, err := h.service.CreateRepository(r.Context(), in)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, repo)
}

func (h *handler) getRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := h.service.GetRepository(r.Context(), r.PathValue("id"))
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, repo)
}

func (h *handler) deleteRepository(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRepository(r.Context(), r.PathValue("id")); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handler) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListFiles(r.Context(), r.PathValue("id"))
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	if files == nil {
		files = []File{}
	}
	httpjson.Write(w, http.StatusOK, files)
}

func (h *handler) addFile(w http.ResponseWriter, r *http.Request) {
	var in AddFileInput
	if err := httpjson.Decode(w, r, h.maxBodyBytes, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	file, commit, err := h.service.AddFile(r.Context(), r.PathValue("id"), in)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, fileCommitResponse{File: file, Commit: commit})
}

func (h *handler) updateFile(w http.ResponseWriter, r *http.Request) {
	var in UpdateFileInput
	if err := httpjson.Decode(w, r, h.maxBodyBytes, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	file, commit, err := h.service.UpdateFile(r.Context(), r.PathValue("id"), r.PathValue("fileId"), in)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, fileCommitResponse{File: file, Commit: commit})
}

func (h *handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	commit, err := h.service.DeleteFile(
		r.Context(),
		r.PathValue("id"),
		r.PathValue("fileId"),
		r.URL.Query().Get("author"),
	)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, okCommitResponse{Ok: true, Commit: commit})
}

func (h *handler) listCommits(w http.ResponseWriter, r *http.Request) {
	commits, err := h.service.ListCommits(r.Context(), r.PathValue("id"))
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	if commits == nil {
		commits = []Commit{}
	}
	httpjson.Write(w, http.StatusOK, commits)
}

func (h *handler) revert(w http.ResponseWriter, r *http.Request) {
	var in RevertInput
	if err := httpjson.Decode(w, r, h.maxBodyBytes, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	commit, err := h.service.Revert(r.Context(), r.PathValue("id"), in)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, okCommitResponse{Ok: true, Commit: commit})
}

func (h *handler) share(w http.ResponseWriter, r *http.Request) {
	var in ShareInput
	if err := httpjson.Decode(w, r, h.maxBodyBytes, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	collaborator, err := h.service.Share(r.Context(), r.PathValue("id"), in)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, shareResponse{Ok: true, Collaborator: collaborator})
}

func (h *handler) star(w http.ResponseWriter, r *http.Request) {
	stars, err := h.service.Star(r.Context(), r.PathValue("id"))
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusOK, starResponse{Stars: stars})
}
