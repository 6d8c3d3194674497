// Package apierror shapes failures as {"errors":[{status,title,detail}]}.
package apierror

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"user-registry-api/internal/domain/user"
)

type (
	Entry struct {
		Status string `json:"status"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	ErrorPayload struct {
		Errors []Entry `json:"errors"`
	}
)

// FormatError wraps one human-readable message. The title is the status
// text of the HTTP code; multi-line details are kept as is.
func FormatError(status int, message string) ErrorPayload {
	return ErrorPayload{Errors: []Entry{newEntry(status, message)}}
}

// FormatFieldErrors emits one entry per field, ordered by field name.
func FormatFieldErrors(status int, fields map[string]string) ErrorPayload {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := ErrorPayload{Errors: make([]Entry, 0, len(keys))}
	for _, k := range keys {
		p.Errors = append(p.Errors, newEntry(status, fields[k]))
	}

	return p
}

// StatusOf maps a core error to its HTTP status. ok is false for errors the
// core does not own; those must not be formatted.
func StatusOf(err error) (status int, ok bool) {
	var uErr *user.Error
	if !errors.As(err, &uErr) {
		return 0, false
	}

	switch {
	case errors.Is(uErr, user.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(uErr, user.ErrValidation), errors.Is(uErr, user.ErrConflict):
		return http.StatusBadRequest, true
	}

	return 0, false
}

func newEntry(status int, message string) Entry {
	return Entry{
		Status: strconv.Itoa(status),
		Title:  http.StatusText(status),
		Detail: message,
	}
}
