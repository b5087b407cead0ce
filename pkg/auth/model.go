package auth

import "github.com/golang-jwt/jwt/v5"

type JwtClaims struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller behind a bearer token.
type Identity struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
