package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlite-api/internal/repository"
	"gitlite-api/internal/session"
	"gitlite-api/pkg/auth"
	"gitlite-api/pkg/config"
	"gitlite-api/pkg/jsonfile"
)

type testServer struct {
	*httptest.Server
	issuer *auth.TokenIssuer
}

func setupRouter(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{FallbackPath: filepath.Join(t.TempDir(), "fallback.json")},
		Cors:    config.CorsConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
	cfg.ApplyDefaults()

	fileStorage, err := jsonfile.NewStorage(cfg.Storage.FallbackPath)
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer(cfg.JwtSecret, tokenIssuer)
	router := newRouter(cfg, issuer, nil,
		repository.NewHandler(repository.NewService(repository.NewStore(fileStorage)), cfg.Server.MaxBodyBytes),
		session.NewHandler(session.NewService(cfg, issuer)),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{Server: server, issuer: issuer}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

func TestRouter_UnknownApiRoute(t *testing.T) {
	server := setupRouter(t)

	resp, raw := server.do(t, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"api not found"}`, string(raw))
}

func TestRouter_CorsPreflight(t *testing.T) {
	server := setupRouter(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/repos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_InvalidToken(t *testing.T) {
	server := setupRouter(t)

	resp, _ := server.do(t, http.MethodGet, "/api/repos", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_IdentityFlowsIntoCommits(t *testing.T) {
	server := setupRouter(t)

	token, err := server.issuer.Sign(auth.Identity{Id: "u_1", Name: "octocat"})
	require.NoError(t, err)

	resp, raw := server.do(t, http.MethodPost, "/api/repos", `{"name":"demo"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var repo repository.Repository
	require.NoError(t, json.Unmarshal(raw, &repo))
	require.NotNil(t, repo.Owner)
	assert.Equal(t, "u_1", *repo.Owner)

	resp, raw = server.do(t, http.MethodPost, "/api/repos/"+repo.Id+"/files", `{"path":"a.txt","content":"hi"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		Commit repository.Commit `json:"commit"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "octocat", created.Commit.Author)

	resp, raw = server.do(t, http.MethodPost, "/api/repos/"+repo.Id+"/files", `{"path":"b.txt","content":"yo"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, repository.AnonymousAuthor, created.Commit.Author)
}
