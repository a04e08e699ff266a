// Package logger provides a configured zerolog logger, adapted from
// mycelian-ai-mycelian-memory/server/internal/logger.
package logger

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// New returns a new zerolog.Logger tagged with service, configured so
// errors logged via .Err(err) always carry a stack trace — wrapping with
// pkg/errors when the error doesn't already have one.
func New(service string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); ok {
			return err
		}
		return pkgerrors.WithStack(err)
	}

	return zerolog.New(os.Stdout).With().
		Str("service", service).
		Timestamp().
		Logger()
}
