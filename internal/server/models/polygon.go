package models

import "time"

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Polygon struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Coordinates []Coordinate `json:"coordinates"`
	User        *Owner       `json:"user,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// PolygonPatch is a partial update. A nil Coordinates keeps the stored ring;
// a non-nil one replaces it whole.
type PolygonPatch struct {
	Name        *string
	Description *string
	Coordinates []Coordinate
}
