// Package models holds the client-side view of the records the geomap API
// returns.
package models

import (
	"fmt"
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is what register and login return.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Category    *Ref      `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (l Location) String() string {
	s := fmt.Sprintf("%s  %-30s (%.5f, %.5f)", l.ID, l.Name, l.Latitude, l.Longitude)
	if l.Category != nil {
		s += "  [" + l.Category.Name + "]"
	}
	return s
}

// NewLocation is the body of a location create request.
type NewLocation struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CategoryID  string  `json:"categoryId,omitempty"`
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Polygon struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Coordinates []Coordinate `json:"coordinates"`
}

func (p Polygon) String() string {
	return fmt.Sprintf("%s  %-30s %d points", p.ID, p.Name, len(p.Coordinates))
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Location    *Ref      `json:"location"`
}

func (e Event) String() string {
	s := fmt.Sprintf("%s  %s  %-30s %s", e.ID, e.Date.Format("2006-01-02 15:04"), e.Title, e.Status)
	if e.Location != nil {
		s += "  @ " + e.Location.Name
	}
	return s
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (c Category) String() string {
	return fmt.Sprintf("%s  %-12s %s  %s", c.ID, c.Name, c.Color, c.Description)
}

type SeedResult struct {
	Message    string     `json:"message"`
	Categories []Category `json:"categories"`
}
