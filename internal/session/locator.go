package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

// DefaultTimeout is how long a position request may take before it fails.
const DefaultTimeout = 10 * time.Second

var (
	ErrUnsupported = errors.New("geolocation not supported")
	ErrTimeout     = errors.New("geolocation timed out")

	ErrAlreadyReported = errors.New("location already reported")
)

// Options mirror the browser's PositionOptions.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
}

func DefaultOptions() Options {
	return Options{HighAccuracy: true, Timeout: DefaultTimeout}
}

// Locator is a source of the device's current position.
type Locator interface {
	CurrentPosition(ctx context.Context, opts Options) (model.Location, error)
}

type report struct {
	loc model.Location
	err error
}

// ReportedLocator waits for the dashboard page to post the outcome of its
// own geolocation call. Only the first report is kept, and none is accepted
// once the request has timed out.
type ReportedLocator struct {
	mu       sync.Mutex
	reported bool
	expired  bool
	ch       chan report
}

func NewReportedLocator() *ReportedLocator {
	return &ReportedLocator{ch: make(chan report, 1)}
}

// Report delivers the page's result. It returns ErrAlreadyReported after a
// result was delivered and ErrTimeout after the request expired.
func (r *ReportedLocator) Report(loc model.Location, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reported {
		return ErrAlreadyReported
	}
	if r.expired {
		return ErrTimeout
	}
	r.reported = true
	r.ch <- report{loc: loc, err: err}
	return nil
}

func (r *ReportedLocator) CurrentPosition(ctx context.Context, _ Options) (model.Location, error) {
	select {
	case rep := <-r.ch:
		return rep.loc, rep.err
	case <-ctx.Done():
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reported {
		// delivered before the deadline closed the request
		rep := <-r.ch
		return rep.loc, rep.err
	}
	r.expired = true
	return model.Location{}, ErrTimeout
}
