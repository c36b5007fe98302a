package room

import (
	"context"
	"testing"

	"github.com/irsalhamdi/hotel-booking/core/fault"
)

type memStore struct {
	rooms map[string]*Room
}

func newMemStore(rooms ...*Room) *memStore {
	m := &memStore{rooms: make(map[string]*Room)}
	for _, rm := range rooms {
		m.rooms[rm.ID] = rm
	}
	return m
}

func (m *memStore) GetByID(_ context.Context, id string) (Room, error) {
	rm, ok := m.rooms[id]
	if !ok {
		return Room{}, fault.Errorf(fault.NotFound, "room[%s] not found", id)
	}
	return *rm, nil
}

func (m *memStore) ListByHotel(_ context.Context, hotelID string) ([]Room, error) {
	var out []Room
	for _, rm := range m.rooms {
		if rm.HotelID == hotelID {
			out = append(out, *rm)
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, rm Room) error {
	m.rooms[rm.ID] = &rm
	return nil
}

func (m *memStore) Update(_ context.Context, rm Room) error {
	m.rooms[rm.ID] = &rm
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

func (m *memStore) MarkUnavailable(_ context.Context, id string) (bool, error) {
	rm, ok := m.rooms[id]
	if !ok || !rm.Available {
		return false, nil
	}
	rm.Available = false
	return true, nil
}

func (m *memStore) MarkAvailable(_ context.Context, id string) error {
	rm, ok := m.rooms[id]
	if !ok {
		return fault.Errorf(fault.NotFound, "room[%s] not found", id)
	}
	rm.Available = true
	return nil
}

func TestGateBookUnbook(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(&Room{ID: "r1", Available: true})
	gate := NewGate(store)

	if err := gate.Book(ctx, "r1"); err != nil {
		t.Fatalf("booking an available room: %v", err)
	}
	if rm, _ := store.GetByID(ctx, "r1"); rm.Available {
		t.Fatal("room should be unavailable after booking")
	}

	err := gate.Book(ctx, "r1")
	if !fault.IsKind(err, fault.RoomUnavailable) {
		t.Fatalf("booking a booked room: expected RoomUnavailable, got %v", err)
	}

	if err := gate.Unbook(ctx, "r1"); err != nil {
		t.Fatalf("unbooking: %v", err)
	}
	if rm, _ := store.GetByID(ctx, "r1"); !rm.Available {
		t.Fatal("room should be available after unbooking")
	}
}

func TestGateBookMissingRoom(t *testing.T) {
	gate := NewGate(newMemStore())

	err := gate.Book(context.Background(), "nope")
	if !fault.IsKind(err, fault.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
