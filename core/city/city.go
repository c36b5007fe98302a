package city

import "time"

type City struct {
	ID        string    `json:"id" db:"city_id"`
	Name      string    `json:"name" db:"name"`
	Country   string    `json:"country" db:"country"`
	Visits    int       `json:"visits" db:"visits"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type CityNew struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type CityUp struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}
