package lecture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/slots"
)

// Repository holds the single current lecture of each doctor.
type Repository interface {
	// LoadLecture returns ErrNoActiveLecture when nothing was saved yet.
	LoadLecture(ctx context.Context, doctorID int) (model.Lecture, error)
	SaveLecture(ctx context.Context, doctorID int, l model.Lecture) error
}

// SlotRepository keeps the lecture JSON-encoded in the currentLecture slot.
type SlotRepository struct {
	slots slots.Slots
}

var _ Repository = (*SlotRepository)(nil)

func NewSlotRepository(s slots.Slots) *SlotRepository {
	return &SlotRepository{slots: s}
}

func (r *SlotRepository) LoadLecture(ctx context.Context, doctorID int) (model.Lecture, error) {
	raw, err := r.slots.Get(ctx, doctorID, slots.KeyCurrentLecture)
	if errors.Is(err, slots.ErrNotFound) {
		return model.Lecture{}, ErrNoActiveLecture
	}
	if err != nil {
		return model.Lecture{}, err
	}
	var l model.Lecture
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return model.Lecture{}, fmt.Errorf("decode current lecture: %w", err)
	}
	return l, nil
}

func (r *SlotRepository) SaveLecture(ctx context.Context, doctorID int, l model.Lecture) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode current lecture: %w", err)
	}
	return r.slots.Set(ctx, doctorID, slots.KeyCurrentLecture, string(payload))
}
