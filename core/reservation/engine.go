package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/hotel-booking/core/city"
	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/core/hotel"
	"github.com/irsalhamdi/hotel-booking/core/pricing"
	"github.com/irsalhamdi/hotel-booking/core/room"
	"github.com/irsalhamdi/hotel-booking/core/user"
	"github.com/irsalhamdi/hotel-booking/validate"
)

// Engine creates, reschedules and cancels reservations. Every booking flows
// through the room gate, and the owning hotel's and city's visit counters
// move together with the reservation.
type Engine struct {
	reservations Store
	rooms        room.Store
	gate         *room.Gate
	users        user.Store
	hotels       hotel.Store
	cities       city.Store
	now          func() time.Time
}

func NewEngine(reservations Store, rooms room.Store, users user.Store, hotels hotel.Store, cities city.Store) *Engine {
	return &Engine{
		reservations: reservations,
		rooms:        rooms,
		gate:         room.NewGate(rooms),
		users:        users,
		hotels:       hotels,
		cities:       cities,
		now:          time.Now,
	}
}

// WithClock replaces the engine's clock. Tests use it to pin "now".
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Create books the room for the requested range. The gate's conditional
// write is the serialization point, so two racing creates on the same room
// produce exactly one reservation.
func (e *Engine) Create(ctx context.Context, n New) (Reservation, error) {
	rm, err := e.rooms.GetByID(ctx, n.RoomID)
	if err != nil {
		return Reservation{}, fmt.Errorf("fetching room[%s]: %w", n.RoomID, err)
	}

	if _, err := e.users.GetByID(ctx, n.UserID); err != nil {
		return Reservation{}, fmt.Errorf("fetching user[%s]: %w", n.UserID, err)
	}

	if !rm.Available {
		return Reservation{}, fault.Errorf(fault.RoomUnavailable, "room[%s] is not available", rm.ID)
	}

	now := e.now().UTC()
	if n.StartDate.Before(now) {
		return Reservation{}, fault.Errorf(fault.InvalidOperation, "start date is in the past")
	}
	if !n.StartDate.Before(n.EndDate) {
		return Reservation{}, fault.Errorf(fault.InvalidOperation, "start date must come before end date")
	}

	if err := e.gate.Book(ctx, rm.ID); err != nil {
		return Reservation{}, err
	}

	res := Reservation{
		ID:        validate.GenerateID(),
		RoomID:    rm.ID,
		UserID:    n.UserID,
		StartDate: n.StartDate,
		EndDate:   n.EndDate,
		Price:     pricing.Total(rm.PricePerNight, n.StartDate, n.EndDate),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := e.reservations.Create(ctx, res); err != nil {
		// Give the room back; the reservation never existed.
		if uerr := e.gate.Unbook(ctx, rm.ID); uerr != nil {
			return Reservation{}, fmt.Errorf("unbooking room[%s]: %v (original error: %w)", rm.ID, uerr, err)
		}
		return Reservation{}, fault.New(fault.Creation, fmt.Errorf("creating reservation: %w", err))
	}

	if err := e.adjustVisits(ctx, rm.HotelID, +1); err != nil {
		return Reservation{}, err
	}

	return res, nil
}

// Update reschedules a reservation that is still outside its locked window
// and re-prices it from the new range.
func (e *Engine) Update(ctx context.Context, id string, up Up) (Reservation, error) {
	res, err := e.reservations.GetByID(ctx, id)
	if err != nil {
		return Reservation{}, fmt.Errorf("fetching reservation[%s]: %w", id, err)
	}

	rm, err := e.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return Reservation{}, fmt.Errorf("fetching room[%s]: %w", res.RoomID, err)
	}

	now := e.now().UTC()
	if res.StateAt(now) != Mutable {
		return Reservation{}, fault.Errorf(fault.InvalidOperation, "reservation[%s] can no longer be changed", id)
	}

	if up.StartDate.Before(now) {
		return Reservation{}, fault.Errorf(fault.InvalidOperation, "start date is in the past")
	}
	if !up.StartDate.Before(up.EndDate) {
		return Reservation{}, fault.Errorf(fault.InvalidOperation, "start date must come before end date")
	}

	res.StartDate = up.StartDate
	res.EndDate = up.EndDate
	res.Price = pricing.Total(rm.PricePerNight, up.StartDate, up.EndDate)
	res.UpdatedAt = now

	if err := e.reservations.Update(ctx, res); err != nil {
		return Reservation{}, fmt.Errorf("updating reservation[%s]: %w", id, err)
	}

	return res, nil
}

// Delete cancels a reservation under the same window rule as Update, frees
// the room and walks the visit counters back.
func (e *Engine) Delete(ctx context.Context, id string) error {
	res, err := e.reservations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching reservation[%s]: %w", id, err)
	}

	now := e.now().UTC()
	if res.StateAt(now) != Mutable {
		return fault.Errorf(fault.InvalidOperation, "reservation[%s] can no longer be cancelled", id)
	}

	if err := e.gate.Unbook(ctx, res.RoomID); err != nil {
		return err
	}

	rm, err := e.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return fmt.Errorf("fetching room[%s]: %w", res.RoomID, err)
	}

	if err := e.adjustVisits(ctx, rm.HotelID, -1); err != nil {
		return err
	}

	if err := e.reservations.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting reservation[%s]: %w", id, err)
	}

	return nil
}

// Get returns a single reservation.
func (e *Engine) Get(ctx context.Context, id string) (Reservation, error) {
	res, err := e.reservations.GetByID(ctx, id)
	if err != nil {
		return Reservation{}, fmt.Errorf("fetching reservation[%s]: %w", id, err)
	}
	return res, nil
}

// List returns every reservation in the system.
func (e *Engine) List(ctx context.Context) ([]Reservation, error) {
	list, err := e.reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	return list, nil
}

// ListByUser returns the user's reservations.
func (e *Engine) ListByUser(ctx context.Context, userID string) ([]Reservation, error) {
	list, err := e.reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing reservations of user[%s]: %w", userID, err)
	}
	return list, nil
}

func (e *Engine) adjustVisits(ctx context.Context, hotelID string, delta int) error {
	h, err := e.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return fmt.Errorf("fetching hotel[%s]: %w", hotelID, err)
	}

	if delta > 0 {
		if err := e.hotels.IncrementVisits(ctx, h.ID); err != nil {
			return fmt.Errorf("incrementing visits of hotel[%s]: %w", h.ID, err)
		}
		if err := e.cities.IncrementVisits(ctx, h.CityID); err != nil {
			return fmt.Errorf("incrementing visits of city[%s]: %w", h.CityID, err)
		}
		return nil
	}

	if err := e.hotels.DecrementVisits(ctx, h.ID); err != nil {
		return fmt.Errorf("decrementing visits of hotel[%s]: %w", h.ID, err)
	}
	if err := e.cities.DecrementVisits(ctx, h.CityID); err != nil {
		return fmt.Errorf("decrementing visits of city[%s]: %w", h.CityID, err)
	}
	return nil
}
