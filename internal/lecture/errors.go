package lecture

import "errors"

var (
	ErrEmptyName          = errors.New("enter lecture name")
	ErrLocationUnresolved = errors.New("location not detected yet")
	ErrInvalidDuration    = errors.New("duration out of range")
	ErrNoActiveLecture    = errors.New("no active lecture")
)
