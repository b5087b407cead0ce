package auth

import (
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 12 * time.Hour

var (
	ErrInvalidToken  = connect.NewError(connect.CodeUnauthenticated, errors.New("invalid authorization token"))
	ErrTokenExpired  = connect.NewError(connect.CodeUnauthenticated, errors.New("token has expired"))
	ErrInvalidClaims = connect.NewError(connect.CodeUnauthenticated, errors.New("invalid token claims"))
)

type TokenIssuer struct {
	jwtSecret []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenIssuer(jwtSecret []byte, issuer string) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret: jwtSecret,
		issuer:    issuer,
		ttl:       DefaultTokenTTL,
		now:       time.Now,
	}
}

func (i *TokenIssuer) Sign(identity Identity) (string, error) {
	now := i.now().UTC()
	claims := JwtClaims{
		Name:   identity.Name,
		Avatar: identity.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   identity.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.jwtSecret)
	if err != nil {
		return "", connect.NewError(connect.CodeInternal, errors.New("failed to create access token"))
	}

	return signed, nil
}

func (i *TokenIssuer) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return i.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return nil, ErrInvalidClaims
	}

	return &Identity{
		Id:     userID,
		Name:   claims.Name,
		Avatar: claims.Avatar,
	}, nil
}
