package cart

import (
	"context"
	"testing"
	"time"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/core/payment"
	"github.com/irsalhamdi/hotel-booking/core/room"
)

type memCarts struct {
	carts map[string]*Cart
}

func (m *memCarts) GetByID(_ context.Context, id string) (Cart, error) {
	c, ok := m.carts[id]
	if !ok {
		return Cart{}, fault.Errorf(fault.NotFound, "cart[%s] not found", id)
	}
	return *c, nil
}

func (m *memCarts) GetLatestByUser(_ context.Context, userID string) (Cart, error) {
	var latest *Cart
	for _, c := range m.carts {
		if c.UserID != userID {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return Cart{}, fault.Errorf(fault.NotFound, "user[%s] has no cart", userID)
	}
	return *latest, nil
}

func (m *memCarts) ListByUser(_ context.Context, userID string) ([]Cart, error) {
	var out []Cart
	for _, c := range m.carts {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCarts) Create(_ context.Context, c Cart) error {
	m.carts[c.ID] = &c
	return nil
}

func (m *memCarts) Delete(_ context.Context, id string) error {
	delete(m.carts, id)
	return nil
}

func (m *memCarts) AdjustTotal(_ context.Context, id string, delta int) error {
	m.carts[id].TotalPrice += delta
	return nil
}

func (m *memCarts) SetStatus(_ context.Context, id string, status Status) error {
	m.carts[id].Status = status
	return nil
}

func (m *memCarts) BindPaymentMethod(_ context.Context, id, paymentMethodID string) error {
	m.carts[id].PaymentMethodID = &paymentMethodID
	return nil
}

type memItems struct {
	items map[string]Item
}

func (m *memItems) GetByID(_ context.Context, id string) (Item, error) {
	it, ok := m.items[id]
	if !ok {
		return Item{}, fault.Errorf(fault.NotFound, "cart item[%s] not found", id)
	}
	return it, nil
}

func (m *memItems) ListByCart(_ context.Context, cartID string) ([]Item, error) {
	var out []Item
	for _, it := range m.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memItems) Create(_ context.Context, it Item) error {
	m.items[it.ID] = it
	return nil
}

func (m *memItems) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memItems) ExistsForRoom(_ context.Context, cartID, roomID string) (bool, error) {
	for _, it := range m.items {
		if it.CartID == cartID && it.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

type memRooms struct {
	rooms map[string]room.Room
}

func (m *memRooms) GetByID(_ context.Context, id string) (room.Room, error) {
	rm, ok := m.rooms[id]
	if !ok {
		return room.Room{}, fault.Errorf(fault.NotFound, "room[%s] not found", id)
	}
	return rm, nil
}

func (m *memRooms) ListByHotel(_ context.Context, _ string) ([]room.Room, error) { return nil, nil }
func (m *memRooms) Create(_ context.Context, rm room.Room) error {
	m.rooms[rm.ID] = rm
	return nil
}
func (m *memRooms) Update(_ context.Context, rm room.Room) error {
	m.rooms[rm.ID] = rm
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
	m.rooms[id] = rm
	return true, nil
}
func (m *memRooms) MarkAvailable(_ context.Context, id string) error {
	rm := m.rooms[id]
	rm.Available = true
	m.rooms[id] = rm
	return nil
}

type memMethods struct {
	methods map[string]payment.Method
}

func (m *memMethods) GetByID(_ context.Context, id string) (payment.Method, error) {
	pm, ok := m.methods[id]
	if !ok {
		return payment.Method{}, fault.Errorf(fault.NotFound, "payment method[%s] not found", id)
	}
	return pm, nil
}

func (m *memMethods) ListByUser(_ context.Context, _ string) ([]payment.Method, error) {
	return nil, nil
}
func (m *memMethods) Create(_ context.Context, pm payment.Method) error {
	m.methods[pm.ID] = pm
	return nil
}
func (m *memMethods) Delete(_ context.Context, id string) error {
	delete(m.methods, id)
	return nil
}

// spyConfirmer records the handoff to checkout.
type spyConfirmer struct {
	cartID   string
	methodID string
	calls    int
}

func (s *spyConfirmer) ConfirmCart(_ context.Context, cartID, paymentMethodID string) error {
	s.cartID = cartID
	s.methodID = paymentMethodID
	s.calls++
	return nil
}

type fixture struct {
	svc     *Service
	carts   *memCarts
	items   *memItems
	rooms   *memRooms
	confirm *spyConfirmer
	now     time.Time
	start   time.Time
	end     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	carts := &memCarts{carts: make(map[string]*Cart)}
	items := &memItems{items: make(map[string]Item)}
	rooms := &memRooms{rooms: map[string]room.Room{
		"r1": {ID: "r1", HotelID: "h1", PricePerNight: 100, Available: true},
		"r2": {ID: "r2", HotelID: "h1", PricePerNight: 50, Available: true},
	}}
	methods := &memMethods{methods: map[string]payment.Method{
		"pm1": {ID: "pm1", UserID: "u1", Kind: payment.KindCreditCard},
	}}
	confirm := &spyConfirmer{}

	svc := NewService(carts, items, rooms, methods, confirm)
	svc.now = func() time.Time { return now }

	return &fixture{
		svc:     svc,
		carts:   carts,
		items:   items,
		rooms:   rooms,
		confirm: confirm,
		now:     now,
		start:   now.Add(72 * time.Hour),
		end:     now.Add(120 * time.Hour),
	}
}

func TestAddItemKeepsTotalInStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	it1, err := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r1", StartDate: f.start, EndDate: f.end})
	if err != nil {
		t.Fatalf("adding first item: %v", err)
	}
	if it1.Price != 200 {
		t.Errorf("item price: got %d, want 200 (2 nights at 100)", it1.Price)
	}

	it2, err := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r2", StartDate: f.start, EndDate: f.end})
	if err != nil {
		t.Fatalf("adding second item: %v", err)
	}

	c, err := f.svc.Current(ctx, "u1")
	if err != nil {
		t.Fatalf("fetching current cart: %v", err)
	}
	if want := it1.Price + it2.Price; c.TotalPrice != want {
		t.Errorf("cart total: got %d, want %d", c.TotalPrice, want)
	}
	if len(c.Items) != 2 {
		t.Errorf("cart items: got %d, want 2", len(c.Items))
	}
}

func TestAddItemRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		new  ItemNew
		prep func(f *fixture)
		kind fault.Kind
	}{
		{
			name: "unknown room",
			new:  ItemNew{RoomID: "nope", StartDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			kind: fault.NotFound,
		},
		{
			name: "start not before end",
			new:  ItemNew{RoomID: "r1", StartDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			kind: fault.InvalidOperation,
		},
		{
			name: "unavailable room",
			new:  ItemNew{RoomID: "r1", StartDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			prep: func(f *fixture) {
				rm := f.rooms.rooms["r1"]
				rm.Available = false
				f.rooms.rooms["r1"] = rm
			},
			kind: fault.RoomUnavailable,
		},
		{
			name: "duplicate room",
			new:  ItemNew{RoomID: "r1", StartDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			prep: func(f *fixture) {
				if _, err := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r1", StartDate: f.start, EndDate: f.end}); err != nil {
					t.Fatalf("seeding cart: %v", err)
				}
			},
			kind: fault.Creation,
		},
		{
			name: "closed cart",
			new:  ItemNew{RoomID: "r2", StartDate: time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
			prep: func(f *fixture) {
				if _, err := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r1", StartDate: f.start, EndDate: f.end}); err != nil {
					t.Fatalf("seeding cart: %v", err)
				}
				for id := range f.carts.carts {
					f.carts.carts[id].Status = Closed
				}
			},
			kind: fault.Creation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prep != nil {
				tt.prep(f)
			}

			_, err := f.svc.AddItem(ctx, "u1", tt.new)
			if !fault.IsKind(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	it1, _ := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r1", StartDate: f.start, EndDate: f.end})
	it2, _ := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r2", StartDate: f.start, EndDate: f.end})

	if err := f.svc.RemoveItem(ctx, "u1", it1.ID); err != nil {
		t.Fatalf("removing item: %v", err)
	}

	c, err := f.svc.Current(ctx, "u1")
	if err != nil {
		t.Fatalf("fetching current cart: %v", err)
	}
	if c.TotalPrice != it2.Price {
		t.Errorf("cart total after removal: got %d, want %d", c.TotalPrice, it2.Price)
	}

	// Removing the last item deletes the cart itself.
	if err := f.svc.RemoveItem(ctx, "u1", it2.ID); err != nil {
		t.Fatalf("removing last item: %v", err)
	}
	if _, err := f.svc.Current(ctx, "u1"); !fault.IsKind(err, fault.NotFound) {
		t.Fatalf("expected NotFound for the deleted cart, got %v", err)
	}
}

func TestRemoveItemForeignCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	it, _ := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r1", StartDate: f.start, EndDate: f.end})

	err := f.svc.RemoveItem(ctx, "intruder", it.ID)
	if !fault.IsKind(err, fault.NotFound) {
		t.Fatalf("expected NotFound for another user's item, got %v", err)
	}
}

func TestConfirmHandsOffToCheckout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r1", StartDate: f.start, EndDate: f.end}); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}

	if err := f.svc.Confirm(ctx, "u1", "pm1"); err != nil {
		t.Fatalf("confirming: %v", err)
	}

	if f.confirm.calls != 1 {
		t.Fatalf("confirmer calls: got %d, want 1", f.confirm.calls)
	}
	if f.confirm.methodID != "pm1" {
		t.Errorf("confirmed payment method: got %s, want pm1", f.confirm.methodID)
	}

	c, _ := f.svc.Current(ctx, "u1")
	if f.confirm.cartID != c.ID {
		t.Errorf("confirmed cart: got %s, want %s", f.confirm.cartID, c.ID)
	}
}

func TestConfirmForeignPaymentMethod(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.svc.AddItem(ctx, "u1", ItemNew{RoomID: "r1", StartDate: f.start, EndDate: f.end}); err != nil {
		t.Fatalf("seeding cart: %v", err)
	}

	err := f.svc.Confirm(ctx, "intruder", "pm1")
	if !fault.IsKind(err, fault.NotFound) {
		t.Fatalf("expected NotFound for another user's payment method, got %v", err)
	}
	if f.confirm.calls != 0 {
		t.Fatal("confirmer should not have been called")
	}
}
