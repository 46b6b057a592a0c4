package util

import (
	"fmt"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
)

const (
	ErrGeneric = 99
)

// ExitError is returned by commands which want the process to end with a specific exit code, e.g.
// `verify` when the value does not match.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%v (exit code %v)", e.Message, e.Code)
}

// NewExitError creates an error which terminates the program with the given code
func NewExitError(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit immediately with provided error code.
// The code is taken from an ExitError (logged at error level only) or unwrapped from a `flags.Error`
// object. For any other kind of error, a generic error code - 99 - is returned.
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}

	var exitError *ExitError
	var flagsError *flags.Error

	if errors.As(err, &exitError) {
		log.StandardLogger().Errorf("%v", exitError.Message)
		log.Exit(exitError.Code)
	} else if errors.As(err, &flagsError) {
		if flagsError.Type == flags.ErrHelp {
			os.Exit(0)
		}

		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
		log.Exit(int(flagsError.Type))
	} else {
		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
		log.Exit(ErrGeneric)
	}
}
