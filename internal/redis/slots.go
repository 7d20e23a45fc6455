package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/slots"
)

// Slots stores every doctor's slots in a single hash, so Clear is one DEL.
type Slots struct {
	rdb *redis.Client
}

var _ slots.Slots = (*Slots)(nil)

func NewSlots(rdb *redis.Client) *Slots {
	return &Slots{rdb: rdb}
}

func storageKey(doctorID int) string {
	return fmt.Sprintf("doctor:%d:storage", doctorID)
}

func (s *Slots) Get(ctx context.Context, doctorID int, key string) (string, error) {
	v, err := s.rdb.HGet(ctx, storageKey(doctorID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", slots.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read slot %q: %w", key, err)
	}
	return v, nil
}

func (s *Slots) Set(ctx context.Context, doctorID int, key, value string) error {
	if err := s.rdb.HSet(ctx, storageKey(doctorID), key, value).Err(); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

func (s *Slots) Clear(ctx context.Context, doctorID int) error {
	if err := s.rdb.Del(ctx, storageKey(doctorID)).Err(); err != nil {
		return fmt.Errorf("clear slots: %w", err)
	}
	return nil
}
