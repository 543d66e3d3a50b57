// Package memory keeps every repository in process memory behind one lock.
// It has the same uniqueness, ownership and projection semantics as the
// PostgreSQL repositories and backs development runs and tests.
package memory

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/geomap/internal/server/models"
)

// Store owns all in-memory tables. Joins for read projections run under the
// same lock as the writes, so a projection never sees a half-applied change.
type Store struct {
	mu   sync.RWMutex
	now  func() time.Time
	last time.Time
	seq  uint64

	users      map[string]*models.User
	categories map[string]*models.Category

	Users      *UserRepository
	Categories *CategoryRepository
	Locations  *LocationRepository
	Polygons   *OwnedRepository[models.Polygon, models.PolygonPatch]
	Events     *OwnedRepository[models.Event, models.EventPatch]
}

func NewStore() *Store {
	s := &Store{
		now:        time.Now,
		users:      make(map[string]*models.User),
		categories: make(map[string]*models.Category),
	}
	s.Users = &UserRepository{s: s}
	s.Categories = &CategoryRepository{s: s}
	s.Locations = &LocationRepository{newOwnedRepository(s, locationSchema)}
	s.Polygons = newOwnedRepository(s, polygonSchema)
	s.Events = newOwnedRepository(s, eventSchema)
	return s
}

// tick returns a strictly increasing timestamp so that "newest first"
// ordering is total even when the clock does not advance between writes.
// Callers hold the write lock.
func (s *Store) tick() (time.Time, uint64) {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	s.seq++
	return t, s.seq
}
