// Package user is an in-memory user.Repository. It enforces the same unique
// constraints as the Postgres schema.
package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"user-registry-api/internal/domain/user"
)

type Repository struct {
	mu    sync.RWMutex
	seq   uint64
	byID  map[user.UUID]*record
	clock func() time.Time
}

type record struct {
	seq  uint64
	user user.User
}

func NewRepository() *Repository {
	return &Repository{
		byID:  make(map[user.UUID]*record),
		clock: time.Now,
	}
}

func (r *Repository) FetchUserByID(_ context.Context, uuid user.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec, ok := r.byID[uuid]; ok {
		return clone(rec.user), nil
	}

	return nil, nil
}

func (r *Repository) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.find(func(u user.User) bool { return u.Email == email }), nil
}

func (r *Repository) FetchUserByName(_ context.Context, name, lastName string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.find(func(u user.User) bool { return u.Name == name && u.LastName == lastName }), nil
}

// FetchUsers returns records in insertion order.
func (r *Repository) FetchUsers(_ context.Context) (user.Users, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := make([]*record, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	us := make(user.Users, len(recs))
	for idx, rec := range recs {
		us[idx] = clone(rec.user)
	}

	return us, nil
}

func (r *Repository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(req, uuid.Nil); err != nil {
		return nil, err
	}

	now := r.clock().UTC()
	req.UUID = uuid.New()
	req.CreatedAt = now
	req.UpdatedAt = now

	r.seq++
	r.byID[req.UUID] = &record{seq: r.seq, user: req}

	return clone(req), nil
}

func (r *Repository) UpdateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[req.UUID]
	if !ok {
		return nil, nil
	}
	if err := r.checkUnique(req, req.UUID); err != nil {
		return nil, err
	}

	req.CreatedAt = rec.user.CreatedAt
	req.UpdatedAt = r.clock().UTC()
	rec.user = req

	return clone(req), nil
}

func (r *Repository) DeleteUser(_ context.Context, uuid user.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[uuid]
	if !ok {
		return nil, nil
	}
	delete(r.byID, uuid)

	return clone(rec.user), nil
}

// checkUnique must be called with mu held.
func (r *Repository) checkUnique(u user.User, self user.UUID) error {
	for id, rec := range r.byID {
		if id == self {
			continue
		}
		if rec.user.Email == u.Email {
			return user.NewConflictError(user.MsgEmailTaken)
		}
		if rec.user.Name == u.Name && rec.user.LastName == u.LastName {
			return user.NewConflictError(user.MsgNamePairTaken)
		}
	}

	return nil
}

// find must be called with mu held.
func (r *Repository) find(match func(u user.User) bool) *user.User {
	for _, rec := range r.byID {
		if match(rec.user) {
			return clone(rec.user)
		}
	}

	return nil
}

func clone(u user.User) *user.User { return &u }
