// Package account holds the doctor's preference and credential operations
// behind the dashboard's settings menu.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/slots"
)

// HomePath is where the page goes after logout.
const HomePath = "home.html"

const (
	darkModeOn  = "on"
	darkModeOff = "off"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

type PasswordStore interface {
	UpdateDoctorPassword(ctx context.Context, id int, hashedPassword string) error
}

type SessionCloser interface {
	CloseDoctor(doctorID int) int
}

type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

type Service struct {
	slots     slots.Slots
	passwords PasswordStore
	sessions  SessionCloser
	revoker   TokenRevoker
}

func NewService(s slots.Slots, passwords PasswordStore, sessions SessionCloser, revoker TokenRevoker) *Service {
	return &Service{slots: s, passwords: passwords, sessions: sessions, revoker: revoker}
}

// DarkMode reports the saved flag; a missing flag means off.
func (s *Service) DarkMode(ctx context.Context, doctorID int) (bool, error) {
	v, err := s.slots.Get(ctx, doctorID, slots.KeyDarkMode)
	if errors.Is(err, slots.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == darkModeOn, nil
}

// ToggleDarkMode flips the saved flag and returns the new state.
func (s *Service) ToggleDarkMode(ctx context.Context, doctorID int) (bool, error) {
	on, err := s.DarkMode(ctx, doctorID)
	if err != nil {
		return false, err
	}
	on = !on
	value := darkModeOff
	if on {
		value = darkModeOn
	}
	if err := s.slots.Set(ctx, doctorID, slots.KeyDarkMode, value); err != nil {
		return false, err
	}
	return on, nil
}

// ChangePassword stores a bcrypt hash of the normalized password. An empty
// password is rejected and the stored hash is left alone.
func (s *Service) ChangePassword(ctx context.Context, doctorID int, password string) error {
	if NormalizePassword(password) == "" {
		return ErrEmptyPassword
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.passwords.UpdateDoctorPassword(ctx, doctorID, hashed); err != nil {
		return err
	}
	log.Info().Int("doctor_id", doctorID).Msg("doctor password changed")
	return nil
}

// Logout wipes the doctor's slots, closes the open dashboard sessions and
// revokes the token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, doctorID int, token string, ttl time.Duration) error {
	if err := s.slots.Clear(ctx, doctorID); err != nil {
		return err
	}
	closed := 0
	if s.sessions != nil {
		closed = s.sessions.CloseDoctor(doctorID)
	}
	if s.revoker != nil && token != "" {
		if err := s.revoker.Revoke(ctx, token, ttl); err != nil {
			return err
		}
	}
	log.Info().Int("doctor_id", doctorID).Int("sessions_closed", closed).Msg("doctor logged out")
	return nil
}
