// Package store keeps the dashboard's working set in memory. The
// product tracks a single restaurant's live orders; durable order
// history is explicitly out of scope, so a mutex-guarded map is the
// whole persistence layer.
package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mazoon-pos/api/internal/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrStaleStatus    = errors.New("order status changed")
)

// Store holds orders and users behind a single RWMutex.
type Store struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]model.Order
	users  map[uuid.UUID]model.User
}

func New() *Store {
	return &Store{
		orders: make(map[uuid.UUID]model.Order),
		users:  make(map[uuid.UUID]model.User),
	}
}

// OrderFilter narrows ListOrders. Zero values mean no constraint.
// From/To filter on the server-side creation time, not the free-text
// date field the operator types.
type OrderFilter struct {
	Status string
	Search string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// Context parameters exist for interface parity with handlers; the
// in-memory implementation never blocks on them.

func (s *Store) CreateOrder(_ context.Context, order model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID] = order
	return order, nil
}

func (s *Store) GetOrder(_ context.Context, id uuid.UUID) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	return o, nil
}

// ListOrders returns matching orders newest first.
func (s *Store) ListOrders(_ context.Context, f OrderFilter) ([]model.Order, error) {
	s.mu.RLock()
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if orderMatches(o, f) {
			out = append(out, o)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []model.Order{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func orderMatches(o model.Order, f OrderFilter) bool {
	if f.Status != "" && o.CookStatus != f.Status {
		return false
	}
	if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && o.CreatedAt.After(f.To) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(o.CustomerName), q) &&
			!strings.Contains(strings.ToLower(o.Phone), q) &&
			!strings.Contains(strings.ToLower(o.ReceiptNo), q) {
			return false
		}
	}
	return true
}

// UpdateOrder replaces every editable field of an existing order,
// preserving the original creation time.
func (s *Store) UpdateOrder(_ context.Context, order model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.orders[order.ID]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	order.CreatedAt = cur.CreatedAt
	order.UpdatedAt = time.Now()
	s.orders[order.ID] = order
	return order, nil
}

// UpdateOrderStatus moves id from oldStatus to newStatus. The caller
// supplies the status it last read so racing kitchen and reception
// screens lose cleanly instead of clobbering each other.
func (s *Store) UpdateOrderStatus(_ context.Context, id uuid.UUID, oldStatus, newStatus string) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, ErrNotFound
	}
	if o.CookStatus != oldStatus {
		return model.Order{}, ErrStaleStatus
	}
	o.CookStatus = newStatus
	o.UpdatedAt = time.Now()
	s.orders[id] = o
	return o, nil
}

func (s *Store) DeleteOrder(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *Store) CreateUser(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return model.User{}, ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// ListUsers returns every user, oldest account first.
func (s *Store) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateUser replaces email, name, and role of an existing user. A
// non-empty PasswordHash replaces the stored hash; empty keeps it.
func (s *Store) UpdateUser(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[user.ID]
	if !ok {
		return model.User{}, ErrNotFound
	}
	for _, u := range s.users {
		if u.ID != user.ID && strings.EqualFold(u.Email, user.Email) {
			return model.User{}, ErrDuplicateEmail
		}
	}
	cur.Email = user.Email
	cur.Name = user.Name
	cur.Role = user.Role
	if user.PasswordHash != "" {
		cur.PasswordHash = user.PasswordHash
	}
	s.users[cur.ID] = cur
	return cur, nil
}

func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
