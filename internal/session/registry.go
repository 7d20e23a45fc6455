package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("dashboard session not found")

// Registry tracks the open dashboard sessions of all doctors.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	resolver *Resolver
	now      func() time.Time
}

func NewRegistry(resolver *Resolver) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		resolver: resolver,
		now:      time.Now,
	}
}

// Open registers a new session and starts resolving its position.
func (r *Registry) Open(doctorID int) *Session {
	sess := newSession(uuid.NewString(), doctorID, r.resolver.opts, r.now())

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	r.resolver.Resolve(sess, sess.Locator())
	return sess
}

// Get returns the session only to the doctor that opened it.
func (r *Registry) Get(id string, doctorID int) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || sess.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	sess.touch(r.now())
	return sess, nil
}

// CloseDoctor drops every session of the doctor, used on logout.
func (r *Registry) CloseDoctor(doctorID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, sess := range r.sessions {
		if sess.DoctorID == doctorID {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Sweep drops sessions that have not been used for longer than maxIdle.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, sess := range r.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		log.Info().Int("swept", n).Int("open", len(r.sessions)).Msg("idle dashboard sessions dropped")
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
