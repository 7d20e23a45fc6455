// Package lecture creates and edits a doctor's current lecture: input
// validation, session code generation and persistence into the current
// lecture slot.
package lecture

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

// LocationSource is the dashboard session's last resolved device position.
type LocationSource interface {
	Location() (model.Location, bool)
}

// Archiver keeps lectures that are about to be overwritten.
type Archiver interface {
	ArchiveLecture(ctx context.Context, doctorID int, l model.Lecture) (string, error)
}

// Notifier announces a freshly created lecture to attendance devices.
type Notifier interface {
	LectureCreated(ctx context.Context, doctorID int, l model.Lecture) error
}

type CreateInput struct {
	Name    string
	Hours   int
	Minutes int
}

type Config struct {
	Repository Repository
	Codes      CodeGenerator
	Clock      func() time.Time
	Archive    Archiver
	Notifier   Notifier
}

type Manager struct {
	repo     Repository
	codes    CodeGenerator
	now      func() time.Time
	archive  Archiver
	notifier Notifier
}

func NewManager(cfg Config) *Manager {
	m := &Manager{
		repo:     cfg.Repository,
		codes:    cfg.Codes,
		now:      cfg.Clock,
		archive:  cfg.Archive,
		notifier: cfg.Notifier,
	}
	if m.codes == nil {
		m.codes = MathRandCodes{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Create validates the form, builds a new lecture and overwrites the
// doctor's current lecture slot. Nothing is written when validation fails.
func (m *Manager) Create(ctx context.Context, doctorID int, src LocationSource, in CreateInput) (model.Lecture, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Lecture{}, ErrEmptyName
	}
	var (
		loc model.Location
		ok  bool
	)
	if src != nil {
		loc, ok = src.Location()
	}
	if !ok {
		return model.Lecture{}, ErrLocationUnresolved
	}
	duration := model.Duration{Hours: in.Hours, Minutes: in.Minutes}
	if !duration.Valid() {
		return model.Lecture{}, ErrInvalidDuration
	}

	l := model.Lecture{
		LectureName: name,
		Code:        m.codes.Next(),
		Duration:    duration,
		Location:    loc,
		CreatedAt:   m.now().UTC(),
	}

	m.archivePrevious(ctx, doctorID)

	if err := m.repo.SaveLecture(ctx, doctorID, l); err != nil {
		return model.Lecture{}, err
	}
	log.Info().Int("doctor_id", doctorID).Int("code", l.Code).Msg("lecture created")

	if m.notifier != nil {
		if err := m.notifier.LectureCreated(ctx, doctorID, l); err != nil {
			log.Error().Err(err).Int("doctor_id", doctorID).Msg("failed to announce lecture")
		}
	}
	return l, nil
}

func (m *Manager) archivePrevious(ctx context.Context, doctorID int) {
	if m.archive == nil {
		return
	}
	prev, err := m.repo.LoadLecture(ctx, doctorID)
	if errors.Is(err, ErrNoActiveLecture) {
		return
	}
	if err != nil {
		log.Error().Err(err).Int("doctor_id", doctorID).Msg("failed to load lecture for archive")
		return
	}
	if _, err := m.archive.ArchiveLecture(ctx, doctorID, prev); err != nil {
		log.Error().Err(err).Int("doctor_id", doctorID).Int("code", prev.Code).Msg("failed to archive lecture")
	}
}

func (m *Manager) Current(ctx context.Context, doctorID int) (model.Lecture, error) {
	return m.repo.LoadLecture(ctx, doctorID)
}

// CurrentDuration pre-fills the duration dialog; 0h 0m without a lecture.
func (m *Manager) CurrentDuration(ctx context.Context, doctorID int) (model.Duration, error) {
	l, err := m.repo.LoadLecture(ctx, doctorID)
	if errors.Is(err, ErrNoActiveLecture) {
		return model.Duration{}, nil
	}
	if err != nil {
		return model.Duration{}, err
	}
	return l.Duration, nil
}

// EditDuration rewrites only the duration of the current lecture.
func (m *Manager) EditDuration(ctx context.Context, doctorID int, d model.Duration) (model.Lecture, error) {
	if !d.Valid() {
		return model.Lecture{}, ErrInvalidDuration
	}
	l, err := m.repo.LoadLecture(ctx, doctorID)
	if err != nil {
		return model.Lecture{}, err
	}
	l.Duration = d
	if err := m.repo.SaveLecture(ctx, doctorID, l); err != nil {
		return model.Lecture{}, err
	}
	return l, nil
}
