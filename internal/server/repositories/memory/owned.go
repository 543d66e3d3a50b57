package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/geomap/internal/common"
)

type row[T any] struct {
	owner   string
	seq     uint64
	created time.Time
	updated time.Time
	value   T
}

// schema adapts OwnedRepository to one resource type.
type schema[T any, P any] struct {
	// stamp writes identity and timestamps onto a stored value.
	stamp func(rec *T, id, ownerID string, createdAt, updatedAt time.Time)
	merge func(rec *T, patch *P)
	// project fills read-time joins on a copy and detaches shared slices
	// and pointers. It runs with the store lock held.
	project func(s *Store, rec *T)
	// byUpdated orders List by last modification instead of creation.
	byUpdated bool
}

// OwnedRepository is the in-memory owned.Repository.
type OwnedRepository[T any, P any] struct {
	s      *Store
	rows   map[string]*row[T]
	schema schema[T, P]
}

func newOwnedRepository[T any, P any](s *Store, sc schema[T, P]) *OwnedRepository[T, P] {
	return &OwnedRepository[T, P]{s: s, rows: make(map[string]*row[T]), schema: sc}
}

func (r *OwnedRepository[T, P]) Create(ctx context.Context, id, ownerID string, rec *T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.rows[id]; ok {
		return common.ErrorAlreadyExists
	}

	now, seq := r.s.tick()
	v := *rec
	r.schema.stamp(&v, id, ownerID, now, now)
	r.rows[id] = &row[T]{owner: ownerID, seq: seq, created: now, updated: now, value: v}
	return nil
}

func (r *OwnedRepository[T, P]) Get(ctx context.Context, id, ownerID string) (*T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rw, ok := r.rows[id]
	if !ok || rw.owner != ownerID {
		return nil, common.ErrorNotFound
	}
	v := r.read(rw)
	return &v, nil
}

func (r *OwnedRepository[T, P]) List(ctx context.Context, ownerID string) ([]T, error) {
	return r.find(ownerID, r.schema.byUpdated, nil), nil
}

func (r *OwnedRepository[T, P]) Update(ctx context.Context, id, ownerID string, patch *P) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.rows[id]
	if !ok || rw.owner != ownerID {
		return common.ErrorNotFound
	}

	now, _ := r.s.tick()
	r.schema.merge(&rw.value, patch)
	rw.updated = now
	r.schema.stamp(&rw.value, id, ownerID, rw.created, now)
	return nil
}

func (r *OwnedRepository[T, P]) Delete(ctx context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rw, ok := r.rows[id]
	if !ok || rw.owner != ownerID {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

// find returns the owner's projected records accepted by match, newest first.
func (r *OwnedRepository[T, P]) find(ownerID string, byUpdated bool, match func(*T) bool) []T {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*row[T], 0)
	for _, rw := range r.rows {
		if rw.owner != ownerID {
			continue
		}
		if match != nil && !match(&rw.value) {
			continue
		}
		matched = append(matched, rw)
	}

	slices.SortFunc(matched, func(a, b *row[T]) int {
		ta, tb := a.created, b.created
		if byUpdated {
			ta, tb = a.updated, b.updated
		}
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	result := make([]T, 0, len(matched))
	for _, rw := range matched {
		result = append(result, r.read(rw))
	}
	return result
}

func (r *OwnedRepository[T, P]) read(rw *row[T]) T {
	v := rw.value
	r.schema.project(r.s, &v)
	return v
}
