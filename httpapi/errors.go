package httpapi

import (
	"errors"
	"net/http"

	"github.com/BurntNail/sourisdb/internal/errs"
)

// statusFor maps a domain error to the HTTP status §6.2 assigns it:
// InvalidDatabaseName and malformed request bodies are client errors,
// DatabaseNotFound/KeyNotFound are 404, everything else is a 500.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errs.ErrInvalidDatabaseName):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrDatabaseNotFound), errors.Is(err, errs.ErrKeyNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
