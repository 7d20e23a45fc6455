package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Resolver runs the one position request of a session in the background.
type Resolver struct {
	opts Options
}

func NewResolver(opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Resolver{opts: opts}
}

// Resolve starts the request and returns immediately. There is no retry and
// no way to cancel it; the outcome lands on the session.
func (r *Resolver) Resolve(sess *Session, loc Locator) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
		defer cancel()

		pos, err := loc.CurrentPosition(ctx, r.opts)
		if err != nil {
			log.WithLevel(failureLevel(err)).Err(err).Str("session_id", sess.ID).Int("doctor_id", sess.DoctorID).Msg("could not get location")
			sess.fail(err)
			return
		}
		sess.resolve(pos)
		log.Debug().Str("session_id", sess.ID).Msg("location resolved")
	}()
}

// failureLevel keeps a missing geolocation capability out of the error log;
// denied access and timeouts are errors.
func failureLevel(err error) zerolog.Level {
	if errors.Is(err, ErrUnsupported) {
		return zerolog.WarnLevel
	}
	return zerolog.ErrorLevel
}
