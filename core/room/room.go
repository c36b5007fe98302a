package room

import "time"

// Room is a bookable unit. The availability flag is the single source of
// truth for bookability and is flipped only through the Gate.
type Room struct {
	ID            string    `json:"id" db:"room_id"`
	HotelID       string    `json:"hotelId" db:"hotel_id"`
	Name          string    `json:"name" db:"name"`
	PricePerNight int       `json:"pricePerNight" db:"price_per_night"`
	Available     bool      `json:"available" db:"available"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type RoomNew struct {
	HotelID       string `json:"hotelId" validate:"required,uuid4"`
	Name          string `json:"name" validate:"required"`
	PricePerNight int    `json:"pricePerNight" validate:"required,gt=0"`
}

type RoomUp struct {
	Name          *string `json:"name"`
	PricePerNight *int    `json:"pricePerNight" validate:"omitempty,gt=0"`
}
