package total

import (
	"errors"
	"fmt"
)

const errFmt = "%s: %s"

// Common errors for Total service implementations and validations.
var (
	ErrInvalidTotal = errors.New("invalid total")
)

// Error wraps common Total errors.
type Error struct {
	err error
	msg string
}

func (e Error) Error() string {
	return e.msg
}

// IsInvalidTotal indicates if err is ErrInvalidTotal.
func IsInvalidTotal(err error) bool {
	return unwrapError(err) == ErrInvalidTotal
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
