package joined

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Join service implementations and validations.
var (
	ErrInvalidJoin = errors.New("invalid join")
)

// Error wraps common Join errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsInvalidJoin indicates if err is ErrInvalidJoin.
func IsInvalidJoin(err error) bool {
	return unwrapError(err) == ErrInvalidJoin
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
