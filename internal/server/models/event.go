package models

import "time"

// DefaultEventStatus is assigned to events created without a status.
const DefaultEventStatus = "active"

type Event struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
	LocationID  *string      `json:"locationId"`
	Location    *LocationRef `json:"location"`
	Status      string       `json:"status"`
	User        *Owner       `json:"user,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	LocationID  *string
	Status      *string
}
