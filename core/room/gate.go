package room

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/hotel-booking/core/fault"
)

// Gate owns the availability flag. Booking goes through the store's
// conditional write, so two concurrent bookings of the same room cannot both
// win even though callers read the flag beforehand.
type Gate struct {
	rooms Store
}

func NewGate(rooms Store) *Gate { return &Gate{rooms: rooms} }

// Book flips the room to unavailable. It fails with fault.NotFound when the
// room does not exist and with fault.RoomUnavailable when another booking got
// there first.
func (g *Gate) Book(ctx context.Context, roomID string) error {
	booked, err := g.rooms.MarkUnavailable(ctx, roomID)
	if err != nil {
		return fmt.Errorf("booking room[%s]: %w", roomID, err)
	}
	if booked {
		return nil
	}

	if _, err := g.rooms.GetByID(ctx, roomID); err != nil {
		return err
	}
	return fault.Errorf(fault.RoomUnavailable, "room[%s] is already booked", roomID)
}

// Unbook flips the room back to available.
func (g *Gate) Unbook(ctx context.Context, roomID string) error {
	if err := g.rooms.MarkAvailable(ctx, roomID); err != nil {
		return fmt.Errorf("unbooking room[%s]: %w", roomID, err)
	}
	return nil
}
