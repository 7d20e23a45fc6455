// Package session holds the transient state of one dashboard page load:
// the resolved device position and its status line, the seating menu and
// the open dialog.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/view"
)

const (
	StatusRequesting  = "Requesting location..."
	StatusUnsupported = "Geolocation not supported"
	StatusFailed      = "Could not get location. Allow access & enable GPS."
)

type Session struct {
	ID       string
	DoctorID int
	Options  Options

	mu       sync.Mutex
	location *model.Location
	status   string
	lastSeen time.Time
	done     chan struct{}
	locator  *ReportedLocator

	Menu  *view.Menu
	Modal *view.Modal
}

func newSession(id string, doctorID int, opts Options, now time.Time) *Session {
	return &Session{
		ID:       id,
		DoctorID: doctorID,
		Options:  opts,
		status:   StatusRequesting,
		lastSeen: now,
		done:     make(chan struct{}),
		locator:  NewReportedLocator(),
		Menu:     view.NewMenu(),
		Modal:    &view.Modal{},
	}
}

// Location implements lecture.LocationSource.
func (s *Session) Location() (model.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return model.Location{}, false
	}
	return *s.location, true
}

func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Resolved is closed once the position request finished either way.
func (s *Session) Resolved() <-chan struct{} {
	return s.done
}

// Locator is where the page's geolocation result is delivered.
func (s *Session) Locator() *ReportedLocator {
	return s.locator
}

func (s *Session) resolve(loc model.Location) {
	s.mu.Lock()
	s.location = &loc
	s.status = fmt.Sprintf("Location: %.6f, %.6f", loc.Lat, loc.Lng)
	s.mu.Unlock()
	close(s.done)
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	if errors.Is(err, ErrUnsupported) {
		s.status = StatusUnsupported
	} else {
		s.status = StatusFailed
	}
	s.mu.Unlock()
	close(s.done)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
