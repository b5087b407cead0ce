package session

import "gitlite-api/pkg/auth"

type SignInResult struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

type githubUser struct {
	Id        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarUrl string `json:"avatar_url"`
}
