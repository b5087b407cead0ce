package session

import (
	"errors"

	"connectrpc.com/connect"
)

var (
	ErrCodeRequired       = connect.NewError(connect.CodeInvalidArgument, errors.New("No code provided"))
	ErrAccessTokenMissing = connect.NewError(connect.CodeFailedPrecondition, errors.New("Failed to get access token"))
	ErrInvalidGithubUser  = connect.NewError(connect.CodeFailedPrecondition, errors.New("invalid github user"))
	ErrGithubUnavailable  = connect.NewError(connect.CodeUnavailable, errors.New("github is unreachable"))
)
