package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"go.uber.org/zap"

	"gitlite-api/pkg/auth"
	"gitlite-api/pkg/config"
)

const userIdPrefix = "u_"

var scopes = []string{"read:user", "repo"}

type Service interface {
	AuthorizeUrl() string
	SignIn(ctx context.Context, code string) (*SignInResult, error)
}

type service struct {
	oauthConfig *oauth2.Config
	apiUrl      string
	issuer      *auth.TokenIssuer
}

func NewService(cfg *config.Config, issuer *auth.TokenIssuer) Service {
	return &service{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.Github.ClientId,
			ClientSecret: cfg.Github.ClientSecret,
			RedirectURL:  cfg.Github.RedirectUri,
			Scopes:       scopes,
			Endpoint:     github.Endpoint,
		},
		apiUrl: strings.TrimSuffix(cfg.Github.ApiUrl, "/"),
		issuer: issuer,
	}
}

func (s *service) AuthorizeUrl() string {
	return s.oauthConfig.AuthCodeURL("")
}

// SignIn exchanges an authorization code for a GitHub access token, reads the
// GitHub profile and issues our own bearer token for it.
func (s *service) SignIn(ctx context.Context, code string) (*SignInResult, error) {
	if code == "" {
		return nil, ErrCodeRequired
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		zap.L().Warn("github code exchange failed", zap.Error(err))
		if isUnreachable(err) {
			return nil, ErrGithubUnavailable
		}
		return nil, ErrAccessTokenMissing
	}

	user, err := s.fetchUser(ctx, token)
	if err != nil {
		return nil, err
	}

	identity := auth.Identity{
		Id:     userIdPrefix + strconv.FormatInt(user.Id, 10),
		Name:   user.Login,
		Avatar: user.AvatarUrl,
	}

	signed, err := s.issuer.Sign(identity)
	if err != nil {
		return nil, err
	}

	zap.L().Info("user signed in", zap.String("userId", identity.Id), zap.String("name", identity.Name))

	return &SignInResult{
		Token: signed,
		User:  identity,
	}, nil
}

func (s *service) fetchUser(ctx context.Context, token *oauth2.Token) (*githubUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiUrl+"/user", nil)
	if err != nil {
		return nil, ErrGithubUnavailable
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "gitlite")

	res, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		zap.L().Warn("github user request failed", zap.Error(err))
		return nil, ErrGithubUnavailable
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		zap.L().Warn("github user request rejected", zap.Int("status", res.StatusCode))
		return nil, ErrGithubUnavailable
	}

	var user githubUser
	if err := json.NewDecoder(res.Body).Decode(&user); err != nil || user.Id == 0 {
		return nil, ErrInvalidGithubUser
	}

	return &user, nil
}

// isUnreachable separates transport failures from token endpoint refusals.
func isUnreachable(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
