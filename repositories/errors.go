package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors returned by all repositories. Callers branch with
// errors.Is instead of inspecting driver errors directly.
var (
	ErrNotFound   = errors.New("repositories: document not found")
	ErrConflict   = errors.New("repositories: write conflict")
	ErrNetwork    = errors.New("repositories: store unreachable")
	ErrPermission = errors.New("repositories: operation not permitted")
)

// Server error codes that indicate the connection is authenticated
// wrongly or not at all, rather than a bad request.
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
)

// mapError normalizes mongo driver errors into the sentinel set. The
// original error stays wrapped for logging.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.Join(ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(ErrConflict, err)
	case isPermissionError(err):
		return errors.Join(ErrPermission, err)
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return errors.Join(ErrNetwork, err)
	}
	return err
}

func isPermissionError(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == codeUnauthorized || ce.Code == codeAuthenticationFailed
	}
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorCode(codeUnauthorized) || se.HasErrorCode(codeAuthenticationFailed)
	}
	return false
}
