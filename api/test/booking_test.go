package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/irsalhamdi/hotel-booking/core/cart"
	"github.com/irsalhamdi/hotel-booking/core/city"
	"github.com/irsalhamdi/hotel-booking/core/hotel"
	"github.com/irsalhamdi/hotel-booking/core/payment"
	"github.com/irsalhamdi/hotel-booking/core/review"
	"github.com/irsalhamdi/hotel-booking/core/room"
	"github.com/plutov/paypal/v4"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

type reservationView struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Price     int       `json:"price"`
	State     string    `json:"state"`
}

// TestBookingFlow walks the whole journey: the admin builds the catalog, the
// guest fills a cart, pays through the mocked paypal and ends up with
// reservations holding the rooms.
func TestBookingFlow(t *testing.T) {
	env, err := NewTestEnv(t, "booking_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	// Catalog setup as admin.
	env.Login(t, AdminEmail, AdminPass)

	var ct city.City
	env.Do(t, http.MethodPost, "/cities", city.CityNew{Name: "Lisbon", Country: "Portugal"}, http.StatusCreated, &ct)

	var h hotel.Hotel
	env.Do(t, http.MethodPost, "/hotels", hotel.HotelNew{CityID: ct.ID, Name: "Seaside", Address: "1 Shore Rd", Stars: 4}, http.StatusCreated, &h)

	var r1, r2 room.Room
	env.Do(t, http.MethodPost, "/rooms", room.RoomNew{HotelID: h.ID, Name: "Sea View", PricePerNight: 100}, http.StatusCreated, &r1)
	env.Do(t, http.MethodPost, "/rooms", room.RoomNew{HotelID: h.ID, Name: "Garden View", PricePerNight: 50}, http.StatusCreated, &r2)

	env.Logout(t)

	// Booking as guest.
	env.Login(t, UserEmail, UserPass)

	var pm payment.Method
	env.Do(t, http.MethodPost, "/payment-methods", payment.MethodNew{
		Kind: payment.KindCreditCard,
		CreditCard: &payment.CreditCardNew{
			Holder:      "Guest Tester",
			Number:      "4111111111111111",
			ExpiryMonth: 12,
			ExpiryYear:  2030,
		},
	}, http.StatusCreated, &pm)

	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	end := start.Add(48 * time.Hour)

	env.Do(t, http.MethodPut, "/cart/items", cart.ItemNew{RoomID: r1.ID, StartDate: start, EndDate: end}, http.StatusCreated, nil)
	env.Do(t, http.MethodPut, "/cart/items", cart.ItemNew{RoomID: r2.ID, StartDate: start, EndDate: end}, http.StatusCreated, nil)

	var c cart.Cart
	env.Do(t, http.MethodGet, "/cart", nil, http.StatusOK, &c)
	if c.TotalPrice != 300 {
		t.Fatalf("cart total: got %d, want 300 (2 nights at 100 + 2 nights at 50)", c.TotalPrice)
	}
	if len(c.Items) != 2 {
		t.Fatalf("cart items: got %d, want 2", len(c.Items))
	}

	// The same room cannot go into the cart twice.
	env.Do(t, http.MethodPut, "/cart/items", cart.ItemNew{RoomID: r1.ID, StartDate: start, EndDate: end}, http.StatusUnprocessableEntity, nil)

	// Pay through paypal: create the provider order, then capture it.
	var ord paypal.Order
	env.Do(t, http.MethodPost, "/checkout/paypal", nil, http.StatusOK, &ord)
	env.Do(t, http.MethodPost, "/checkout/paypal/"+ord.ID+"/capture",
		map[string]string{"paymentMethodId": pm.ID}, http.StatusNoContent, nil)

	var reservations []reservationView
	env.Do(t, http.MethodGet, "/reservations", nil, http.StatusOK, &reservations)
	if len(reservations) != 2 {
		t.Fatalf("reservations: got %d, want 2", len(reservations))
	}

	var total int
	for _, res := range reservations {
		total += res.Price
		if res.State != "mutable" {
			t.Errorf("reservation[%s] state: got %s, want mutable", res.ID, res.State)
		}
	}
	if total != 300 {
		t.Errorf("total reserved price: got %d, want 300", total)
	}

	// Both rooms are held now.
	for _, id := range []string{r1.ID, r2.ID} {
		var rm room.Room
		env.Do(t, http.MethodGet, "/rooms/"+id, nil, http.StatusOK, &rm)
		if rm.Available {
			t.Errorf("room[%s] should be unavailable after checkout", id)
		}
	}

	// A direct booking of a held room loses.
	env.Do(t, http.MethodPost, "/reservations", map[string]any{
		"roomId":    r1.ID,
		"startDate": start.Add(30 * 24 * time.Hour),
		"endDate":   end.Add(30 * 24 * time.Hour),
	}, http.StatusConflict, nil)

	// The closed cart rejects further items.
	env.Do(t, http.MethodPut, "/cart/items", cart.ItemNew{RoomID: r1.ID, StartDate: start, EndDate: end}, http.StatusUnprocessableEntity, nil)

	// Cancelling one reservation frees its room again.
	env.Do(t, http.MethodDelete, "/reservations/"+reservations[0].ID, nil, http.StatusNoContent, nil)

	var rm room.Room
	env.Do(t, http.MethodGet, "/rooms/"+reservations[0].RoomID, nil, http.StatusOK, &rm)
	if !rm.Available {
		t.Errorf("room[%s] should be available after cancellation", reservations[0].RoomID)
	}

	// The guest leaves a review on the hotel.
	var rv review.Review
	env.Do(t, http.MethodPost, "/hotels/"+h.ID+"/reviews", review.ReviewNew{Rating: 5, Comment: "lovely"}, http.StatusCreated, &rv)
	if rv.HotelID != h.ID {
		t.Errorf("review hotel id: got %s, want %s", rv.HotelID, h.ID)
	}

	var reviews []review.Review
	env.Do(t, http.MethodGet, "/hotels/"+h.ID+"/reviews", nil, http.StatusOK, &reviews)
	if len(reviews) != 1 {
		t.Errorf("hotel reviews: got %d, want 1", len(reviews))
	}
}

// TestStripeWebhook drives the stripe capture path: a signed
// checkout.session.completed event confirms the cart of the user the session
// references.
func TestStripeWebhook(t *testing.T) {
	env, err := NewTestEnv(t, "stripe_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	env.Login(t, AdminEmail, AdminPass)

	var ct city.City
	env.Do(t, http.MethodPost, "/cities", city.CityNew{Name: "Porto", Country: "Portugal"}, http.StatusCreated, &ct)
	var h hotel.Hotel
	env.Do(t, http.MethodPost, "/hotels", hotel.HotelNew{CityID: ct.ID, Name: "Riverside", Address: "2 Bridge St", Stars: 3}, http.StatusCreated, &h)
	var rm room.Room
	env.Do(t, http.MethodPost, "/rooms", room.RoomNew{HotelID: h.ID, Name: "Standard", PricePerNight: 80}, http.StatusCreated, &rm)

	env.Logout(t)
	env.Login(t, UserEmail, UserPass)

	var pm payment.Method
	env.Do(t, http.MethodPost, "/payment-methods", payment.MethodNew{
		Kind:   payment.KindPaypal,
		Paypal: &payment.PaypalNew{Email: "guest@test.local"},
	}, http.StatusCreated, &pm)

	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	end := start.Add(24 * time.Hour)
	env.Do(t, http.MethodPut, "/cart/items", cart.ItemNew{RoomID: rm.ID, StartDate: start, EndDate: end}, http.StatusCreated, nil)

	var me struct {
		ID string `json:"id"`
	}
	env.Do(t, http.MethodGet, "/users/current", nil, http.StatusOK, &me)

	// Fabricate the event stripe would post after a completed session.
	session := map[string]any{
		"id":                  "cs_test_123",
		"mode":                stripe.CheckoutSessionModePayment,
		"client_reference_id": me.ID,
		"metadata":            map[string]string{"payment_method_id": pm.ID},
	}
	raw, err := json.Marshal(session)
	if err != nil {
		t.Fatal(err)
	}

	evt := stripe.Event{
		APIVersion: "2022-11-15",
		Type:       "checkout.session.completed",
		Data:       &stripe.EventData{Raw: json.RawMessage(raw)},
	}
	b, err := json.Marshal(evt)
	if err != nil {
		t.Fatal(err)
	}

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   b,
		Secret:    env.WebhookSecret,
		Timestamp: time.Now(),
	})

	r, err := http.NewRequest(http.MethodPost, env.URL+"/checkout/stripe/capture", bytes.NewBuffer(b))
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Stripe-Signature", signed.Header)

	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()
	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("stripe webhook: status code %s", w.Status)
	}

	var reservations []reservationView
	env.Do(t, http.MethodGet, "/reservations", nil, http.StatusOK, &reservations)
	if len(reservations) != 1 {
		t.Fatalf("reservations: got %d, want 1", len(reservations))
	}
	if want := 80; reservations[0].Price != want {
		t.Errorf("reservation price: got %d, want %d", reservations[0].Price, want)
	}
}
