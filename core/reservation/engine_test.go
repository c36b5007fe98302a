package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/irsalhamdi/hotel-booking/core/city"
	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/core/hotel"
	"github.com/irsalhamdi/hotel-booking/core/room"
	"github.com/irsalhamdi/hotel-booking/core/user"
)

type memRooms struct {
	rooms map[string]*room.Room
}

func newMemRooms(rooms ...*room.Room) *memRooms {
	m := &memRooms{rooms: make(map[string]*room.Room)}
	for _, rm := range rooms {
		m.rooms[rm.ID] = rm
	}
	return m
}

func (m *memRooms) GetByID(_ context.Context, id string) (room.Room, error) {
	rm, ok := m.rooms[id]
	if !ok {
		return room.Room{}, fault.Errorf(fault.NotFound, "room[%s] not found", id)
	}
	return *rm, nil
}

func (m *memRooms) ListByHotel(_ context.Context, hotelID string) ([]room.Room, error) {
	var out []room.Room
	for _, rm := range m.rooms {
		if rm.HotelID == hotelID {
			out = append(out, *rm)
		}
	}
	return out, nil
}

func (m *memRooms) Create(_ context.Context, rm room.Room) error {
	m.rooms[rm.ID] = &rm
	return nil
}

func (m *memRooms) Update(_ context.Context, rm room.Room) error {
	m.rooms[rm.ID] = &rm
	return nil
}

func (m *memRooms) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

func (m *memRooms) MarkUnavailable(_ context.Context, id string) (bool, error) {
	rm, ok := m.rooms[id]
	if !ok || !rm.Available {
		return false, nil
	}
	rm.Available = false
	return true, nil
}

func (m *memRooms) MarkAvailable(_ context.Context, id string) error {
	rm, ok := m.rooms[id]
	if !ok {
		return fault.Errorf(fault.NotFound, "room[%s] not found", id)
	}
	rm.Available = true
	return nil
}

type memUsers struct {
	users map[string]user.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, fault.Errorf(fault.NotFound, "user[%s] not found", id)
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, fault.Errorf(fault.NotFound, "user[%s] not found", email)
}

func (m *memUsers) Create(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	return nil
}

type memHotels struct {
	hotels map[string]*hotel.Hotel
}

func (m *memHotels) GetByID(_ context.Context, id string) (hotel.Hotel, error) {
	h, ok := m.hotels[id]
	if !ok {
		return hotel.Hotel{}, fault.Errorf(fault.NotFound, "hotel[%s] not found", id)
	}
	return *h, nil
}

func (m *memHotels) ListByCity(_ context.Context, cityID string) ([]hotel.Hotel, error) {
	var out []hotel.Hotel
	for _, h := range m.hotels {
		if h.CityID == cityID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (m *memHotels) Create(_ context.Context, h hotel.Hotel) error {
	m.hotels[h.ID] = &h
	return nil
}

func (m *memHotels) Update(_ context.Context, h hotel.Hotel) error {
	m.hotels[h.ID] = &h
	return nil
}

func (m *memHotels) Delete(_ context.Context, id string) error {
	delete(m.hotels, id)
	return nil
}

func (m *memHotels) IncrementVisits(_ context.Context, id string) error {
	m.hotels[id].Visits++
	return nil
}

func (m *memHotels) DecrementVisits(_ context.Context, id string) error {
	m.hotels[id].Visits--
	return nil
}

type memCities struct {
	cities map[string]*city.City
}

func (m *memCities) GetByID(_ context.Context, id string) (city.City, error) {
	c, ok := m.cities[id]
	if !ok {
		return city.City{}, fault.Errorf(fault.NotFound, "city[%s] not found", id)
	}
	return *c, nil
}

func (m *memCities) List(_ context.Context) ([]city.City, error) {
	var out []city.City
	for _, c := range m.cities {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCities) Create(_ context.Context, c city.City) error {
	m.cities[c.ID] = &c
	return nil
}

func (m *memCities) Update(_ context.Context, c city.City) error {
	m.cities[c.ID] = &c
	return nil
}

func (m *memCities) Delete(_ context.Context, id string) error {
	delete(m.cities, id)
	return nil
}

func (m *memCities) IncrementVisits(_ context.Context, id string) error {
	m.cities[id].Visits++
	return nil
}

func (m *memCities) DecrementVisits(_ context.Context, id string) error {
	m.cities[id].Visits--
	return nil
}

type memReservations struct {
	res map[string]Reservation
}

func (m *memReservations) GetByID(_ context.Context, id string) (Reservation, error) {
	r, ok := m.res[id]
	if !ok {
		return Reservation{}, fault.Errorf(fault.NotFound, "reservation[%s] not found", id)
	}
	return r, nil
}

func (m *memReservations) List(_ context.Context) ([]Reservation, error) {
	var out []Reservation
	for _, r := range m.res {
		out = append(out, r)
	}
	return out, nil
}

func (m *memReservations) ListByUser(_ context.Context, userID string) ([]Reservation, error) {
	var out []Reservation
	for _, r := range m.res {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) Create(_ context.Context, r Reservation) error {
	m.res[r.ID] = r
	return nil
}

func (m *memReservations) Update(_ context.Context, r Reservation) error {
	m.res[r.ID] = r
	return nil
}

func (m *memReservations) Delete(_ context.Context, id string) error {
	delete(m.res, id)
	return nil
}

type fixture struct {
	engine *Engine
	rooms  *memRooms
	hotels *memHotels
	cities *memCities
	store  *memReservations
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	cities := &memCities{cities: map[string]*city.City{
		"c1": {ID: "c1", Name: "Lisbon"},
	}}
	hotels := &memHotels{hotels: map[string]*hotel.Hotel{
		"h1": {ID: "h1", CityID: "c1", Name: "Seaside"},
	}}
	rooms := newMemRooms(&room.Room{ID: "r1", HotelID: "h1", PricePerNight: 100, Available: true})
	users := &memUsers{users: map[string]user.User{
		"u1": {ID: "u1", Email: "guest@example.com"},
	}}
	store := &memReservations{res: make(map[string]Reservation)}

	engine := NewEngine(store, rooms, users, hotels, cities).WithClock(func() time.Time { return now })

	return &fixture{engine: engine, rooms: rooms, hotels: hotels, cities: cities, store: store, now: now}
}

func TestEngineCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.engine.Create(ctx, New{
		RoomID:    "r1",
		UserID:    "u1",
		StartDate: f.now.Add(72 * time.Hour),
		EndDate:   f.now.Add(120 * time.Hour),
	})
	if err != nil {
		t.Fatalf("creating reservation: %v", err)
	}

	if res.Price != 200 {
		t.Errorf("price: got %d, want 200 (2 nights at 100)", res.Price)
	}
	if rm, _ := f.rooms.GetByID(ctx, "r1"); rm.Available {
		t.Error("room should be unavailable after booking")
	}
	if got := f.hotels.hotels["h1"].Visits; got != 1 {
		t.Errorf("hotel visits: got %d, want 1", got)
	}
	if got := f.cities.cities["c1"].Visits; got != 1 {
		t.Errorf("city visits: got %d, want 1", got)
	}
	if res.StateAt(f.now) != Mutable {
		t.Errorf("fresh reservation should be mutable, got %v", res.StateAt(f.now))
	}
}

func TestEngineCreateRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		new  New
		prep func(f *fixture)
		kind fault.Kind
	}{
		{
			name: "unknown room",
			new:  New{RoomID: "nope", UserID: "u1", StartDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			kind: fault.NotFound,
		},
		{
			name: "unknown user",
			new:  New{RoomID: "r1", UserID: "nope", StartDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			kind: fault.NotFound,
		},
		{
			name: "room already booked",
			new:  New{RoomID: "r1", UserID: "u1", StartDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			prep: func(f *fixture) { f.rooms.rooms["r1"].Available = false },
			kind: fault.RoomUnavailable,
		},
		{
			name: "start in the past",
			new:  New{RoomID: "r1", UserID: "u1", StartDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			kind: fault.InvalidOperation,
		},
		{
			name: "start not before end",
			new:  New{RoomID: "r1", UserID: "u1", StartDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			kind: fault.InvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prep != nil {
				tt.prep(f)
			}

			_, err := f.engine.Create(ctx, tt.new)
			if !fault.IsKind(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if len(f.store.res) != 0 {
				t.Fatal("no reservation should have been stored")
			}
		})
	}
}

func TestEngineUpdateReprices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.engine.Create(ctx, New{
		RoomID:    "r1",
		UserID:    "u1",
		StartDate: f.now.Add(72 * time.Hour),
		EndDate:   f.now.Add(120 * time.Hour),
	})
	if err != nil {
		t.Fatalf("creating reservation: %v", err)
	}

	up := Up{StartDate: f.now.Add(96 * time.Hour), EndDate: f.now.Add(168 * time.Hour)}
	got, err := f.engine.Update(ctx, res.ID, up)
	if err != nil {
		t.Fatalf("updating reservation: %v", err)
	}
	if got.Price != 300 {
		t.Errorf("price after update: got %d, want 300 (3 nights at 100)", got.Price)
	}

	stored, _ := f.store.GetByID(ctx, res.ID)
	if !stored.StartDate.Equal(up.StartDate) || !stored.EndDate.Equal(up.EndDate) {
		t.Error("stored dates should match the update")
	}
}

func TestEngineLockedWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Starts 12h from now, inside the 24h locked window.
	f.store.res["locked"] = Reservation{
		ID:        "locked",
		RoomID:    "r1",
		UserID:    "u1",
		StartDate: f.now.Add(12 * time.Hour),
		EndDate:   f.now.Add(60 * time.Hour),
		Price:     200,
	}

	up := Up{StartDate: f.now.Add(96 * time.Hour), EndDate: f.now.Add(168 * time.Hour)}
	if _, err := f.engine.Update(ctx, "locked", up); !fault.IsKind(err, fault.InvalidOperation) {
		t.Fatalf("updating a locked reservation: expected InvalidOperation, got %v", err)
	}
	if err := f.engine.Delete(ctx, "locked"); !fault.IsKind(err, fault.InvalidOperation) {
		t.Fatalf("cancelling a locked reservation: expected InvalidOperation, got %v", err)
	}
}

func TestEngineDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.engine.Create(ctx, New{
		RoomID:    "r1",
		UserID:    "u1",
		StartDate: f.now.Add(72 * time.Hour),
		EndDate:   f.now.Add(120 * time.Hour),
	})
	if err != nil {
		t.Fatalf("creating reservation: %v", err)
	}

	if err := f.engine.Delete(ctx, res.ID); err != nil {
		t.Fatalf("cancelling reservation: %v", err)
	}

	if rm, _ := f.rooms.GetByID(ctx, "r1"); !rm.Available {
		t.Error("room should be available after cancellation")
	}
	if got := f.hotels.hotels["h1"].Visits; got != 0 {
		t.Errorf("hotel visits: got %d, want 0", got)
	}
	if got := f.cities.cities["c1"].Visits; got != 0 {
		t.Errorf("city visits: got %d, want 0", got)
	}
	if _, err := f.store.GetByID(ctx, res.ID); !fault.IsKind(err, fault.NotFound) {
		t.Error("reservation should be gone")
	}
}

func TestStateAt(t *testing.T) {
	start := time.Date(2023, 6, 10, 14, 0, 0, 0, time.UTC)
	end := time.Date(2023, 6, 12, 10, 0, 0, 0, time.UTC)
	res := Reservation{StartDate: start, EndDate: end}

	tests := []struct {
		name string
		now  time.Time
		want State
	}{
		{"well before check-in", start.Add(-48 * time.Hour), Mutable},
		{"exactly at window edge", start.Add(-EditWindow), Locked},
		{"inside window", start.Add(-1 * time.Hour), Locked},
		{"during stay", start.Add(6 * time.Hour), Locked},
		{"at checkout", end, Past},
		{"after stay", end.Add(time.Hour), Past},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.StateAt(tt.now); got != tt.want {
				t.Errorf("StateAt(%v): got %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
