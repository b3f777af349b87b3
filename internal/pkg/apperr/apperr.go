// Package apperr carries the user-facing error taxonomy. Every failure the
// booking engine reports to a caller is either NotFound or InvalidRequest;
// anything else is an internal error and must not leak details.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindNotFound also covers entities that exist but are not eligible
	// (unpublished experience, inactive plan). The two cases are deliberately
	// indistinguishable so existence of unpublished content does not leak.
	KindNotFound       Kind = "NOT_FOUND"
	KindInvalidRequest Kind = "INVALID_REQUEST"
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

func NotFound(msg string) error {
	return &Error{kind: KindNotFound, msg: msg}
}

func InvalidRequest(format string, args ...any) error {
	return &Error{kind: KindInvalidRequest, msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the taxonomy kind of err, or false if err is not an
// application error (i.e. it is internal).
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

func IsInvalidRequest(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInvalidRequest
}

// Message returns the user-safe message for err, falling back to a generic
// message for internal errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return "Internal server error"
}
