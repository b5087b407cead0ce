package httpjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"connectrpc.com/connect"
	"go.uber.org/zap"
)

var (
	ErrPayloadTooLarge = connect.NewError(connect.CodeResourceExhausted, errors.New("request body too large"))
	ErrInvalidBody     = connect.NewError(connect.CodeInvalidArgument, errors.New("invalid request body"))
	ErrApiNotFound     = connect.NewError(connect.CodeNotFound, errors.New("api not found"))
)

type errorBody struct {
	Error string `json:"error"`
}

// Decode reads at most limit bytes of JSON into dst. An empty body leaves dst untouched.
func Decode(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return ErrPayloadTooLarge
		}
		return ErrInvalidBody
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return ErrInvalidBody
	}

	return nil
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

// WriteError renders err as {"error": message} with the status derived from its connect code.
func WriteError(w http.ResponseWriter, err error) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		zap.L().Error("unhandled error", zap.Error(err))
		Write(w, http.StatusInternalServerError, errorBody{Error: "server error"})
		return
	}

	status := StatusFromCode(connectErr.Code())
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
	}

	Write(w, status, errorBody{Error: connectErr.Message()})
}

func StatusFromCode(code connect.Code) int {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeFailedPrecondition, connect.CodeOutOfRange:
		return http.StatusBadRequest
	case connect.CodeUnauthenticated:
		return http.StatusUnauthorized
	case connect.CodePermissionDenied:
		return http.StatusForbidden
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeAlreadyExists, connect.CodeAborted:
		return http.StatusConflict
	case connect.CodeResourceExhausted:
		return http.StatusRequestEntityTooLarge
	case connect.CodeUnimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// NotFound answers any route nothing else claimed.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrApiNotFound)
}
