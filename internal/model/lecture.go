package model

import "time"

const (
	MinCode = 100000
	MaxCode = 999999

	MaxDurationHours   = 5
	MaxDurationMinutes = 59
)

// Lecture is the record kept in a doctor's current lecture slot.
// JSON names are the storage contract shared with the dashboard page.
type Lecture struct {
	LectureName string    `json:"lectureName"`
	Code        int       `json:"code"`
	Duration    Duration  `json:"duration"`
	Location    Location  `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Valid reports whether both fields are inside the dialog bounds.
func (d Duration) Valid() bool {
	return d.Hours >= 0 && d.Hours <= MaxDurationHours &&
		d.Minutes >= 0 && d.Minutes <= MaxDurationMinutes
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
