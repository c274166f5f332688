package chat

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Service implementations.
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrRequestFailed  = errors.New("platform request failed")
)

// Error wraps common chat platform errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsMemberNotFound indicates if err is ErrMemberNotFound.
func IsMemberNotFound(err error) bool {
	return unwrapError(err) == ErrMemberNotFound
}

// IsRequestFailed indicates if err is ErrRequestFailed.
func IsRequestFailed(err error) bool {
	return unwrapError(err) == ErrRequestFailed
}

func unwrapError(err error) error {
	switch e := err.(type) {
	case *Error:
		return e.err
	}

	return err
}

func wrapError(err error, format string, args ...interface{}) error {
	return &Error{
		err: err,
		msg: fmt.Sprintf(
			errFmt,
			err,
			fmt.Sprintf(format, args...),
		),
	}
}
