// Package reservation turns a room and a date range into a confirmed, priced
// stay and guards every mutation with the booking-window rules.
package reservation

import "time"

// EditWindow is how long before check-in a reservation freezes. From that
// point through the end of the stay (and forever after) the reservation can
// be neither updated nor cancelled.
const EditWindow = 24 * time.Hour

type Reservation struct {
	ID        string    `json:"id" db:"reservation_id"`
	RoomID    string    `json:"roomId" db:"room_id"`
	UserID    string    `json:"userId" db:"user_id"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	Price     int       `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// State is derived from the clock, never persisted, so stored state can not
// drift from wall-clock truth.
type State int

const (
	Mutable State = iota + 1
	Locked
	Past
)

func (s State) String() string {
	switch s {
	case Mutable:
		return "mutable"
	case Locked:
		return "locked"
	case Past:
		return "past"
	}
	return "unknown"
}

// StateAt computes the reservation's state at the given instant.
func (r Reservation) StateAt(now time.Time) State {
	if !now.Before(r.EndDate) {
		return Past
	}
	if !now.Before(r.StartDate.Add(-EditWindow)) {
		return Locked
	}
	return Mutable
}

type New struct {
	RoomID    string    `json:"roomId" validate:"required,uuid4"`
	UserID    string    `json:"userId" validate:"required,uuid4"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type Up struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}
