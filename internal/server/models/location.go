package models

import "time"

type Location struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	CategoryID  *string      `json:"categoryId"`
	Category    *CategoryRef `json:"category"`
	User        *Owner       `json:"user,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// LocationPatch is a partial update; nil fields keep their stored value.
type LocationPatch struct {
	Name        *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	CategoryID  *string
}

// LocationRef is the location projection joined into an Event.
type LocationRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
