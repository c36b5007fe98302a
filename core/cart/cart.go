// Package cart is the open/closed container of room-stay selections for one
// user. A cart is created on the first item add, deleted when its last item
// is removed, and closed exactly once on checkout confirmation.
package cart

import "time"

type Status string

const (
	Open   Status = "OPEN"
	Closed Status = "CLOSED"
)

type Cart struct {
	ID              string    `json:"id" db:"cart_id"`
	UserID          string    `json:"userId" db:"user_id"`
	Status          Status    `json:"status" db:"status"`
	TotalPrice      int       `json:"totalPrice" db:"total_price"`
	PaymentMethodID *string   `json:"paymentMethodId" db:"payment_method_id"`
	Items           []Item    `json:"items" db:"-"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type Item struct {
	ID        string    `json:"id" db:"cart_item_id"`
	CartID    string    `json:"cartId" db:"cart_id"`
	RoomID    string    `json:"roomId" db:"room_id"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	Price     int       `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ItemNew struct {
	RoomID    string    `json:"roomId" validate:"required,uuid4"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}
