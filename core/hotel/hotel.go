package hotel

import "time"

type Hotel struct {
	ID        string    `json:"id" db:"hotel_id"`
	CityID    string    `json:"cityId" db:"city_id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Stars     int       `json:"stars" db:"stars"`
	Visits    int       `json:"visits" db:"visits"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type HotelNew struct {
	CityID  string `json:"cityId" validate:"required,uuid4"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Stars   int    `json:"stars" validate:"gte=0,lte=5"`
}

type HotelUp struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Stars   *int    `json:"stars" validate:"omitempty,gte=0,lte=5"`
}
