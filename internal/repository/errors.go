package repository

import (
	"errors"

	"connectrpc.com/connect"
)

var (
	ErrRepositoryNotFound = connect.NewError(connect.CodeNotFound, errors.New("repo not found"))
	ErrFileNotFound       = connect.NewError(connect.CodeNotFound, errors.New("file not found"))
	ErrCommitNotFound     = connect.NewError(connect.CodeNotFound, errors.New("commit not found"))
	ErrNameRequired       = connect.NewError(connect.CodeInvalidArgument, errors.New("name required"))
	ErrPathRequired       = connect.NewError(connect.CodeInvalidArgument, errors.New("path required"))
	ErrUserIdRequired     = connect.NewError(connect.CodeInvalidArgument, errors.New("userId required"))
	ErrInvalidAccessLevel = connect.NewError(connect.CodeInvalidArgument, errors.New("access must be view or write"))
	ErrInternalServer     = connect.NewError(connect.CodeInternal, errors.New("something went wrong"))
)
