// Package memory holds in-process repositories used for local runs
// (DATABASE_URL=memory://) and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"detailing/database"
	"detailing/models"
)

// CartRepo is an in-memory CartRepository.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: make(map[string]models.Cart)}
}

func (r *CartRepo) GetByUser(_ context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	c.Services = append([]models.Service{}, c.Services...)
	return &c, nil
}

func (r *CartRepo) Save(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart.UpdatedAt = time.Now()
	c := *cart
	c.Services = append([]models.Service{}, cart.Services...)
	c.BusyTimes = nil
	r.carts[cart.UserID] = c
	return nil
}

// CatalogRepo is an in-memory CatalogRepository.
type CatalogRepo struct {
	mu       sync.RWMutex
	services map[string]models.Service
}

func NewCatalogRepo(seed ...models.Service) *CatalogRepo {
	r := &CatalogRepo{services: make(map[string]models.Service)}
	for _, s := range seed {
		r.services[s.ID] = s
	}
	return r
}

func (r *CatalogRepo) sorted(keep func(models.Service) bool) []models.Service {
	out := []models.Service{}
	for _, s := range r.services {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *CatalogRepo) GetAll(_ context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(models.Service) bool { return true }), nil
}

func (r *CatalogRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &s, nil
}

func (r *CatalogRepo) GetByNames(_ context.Context, names []string) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	return r.sorted(func(s models.Service) bool { return wanted[s.Name] }), nil
}

func (r *CatalogRepo) Create(_ context.Context, service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now()
	}
	r.services[service.ID] = *service
	return nil
}

func (r *CatalogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

// BookingRepo is an in-memory BookingRepository.
type BookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewBookingRepo(seed ...models.Booking) *BookingRepo {
	r := &BookingRepo{bookings: make(map[string]models.Booking)}
	for _, b := range seed {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *BookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepo) GetByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepo) GetActiveBetween(_ context.Context, from, to time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.Status == models.BookingStatusConfirmed && b.Start.Before(to) && b.End.After(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *BookingRepo) CompleteEndedBefore(_ context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.bookings {
		if b.Status == models.BookingStatusConfirmed && b.End.Before(t) {
			b.Status = models.BookingStatusCompleted
			r.bookings[id] = b
			n++
		}
	}
	return n, nil
}

func (r *BookingRepo) AddPicture(_ context.Context, bookingID string, kind models.PictureKind, picture models.Picture) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, database.ErrNotFound
	}
	if kind == models.PictureBefore {
		b.BeforePictures = append(append([]models.Picture{}, b.BeforePictures...), picture)
	} else {
		b.AfterPictures = append(append([]models.Picture{}, b.AfterPictures...), picture)
	}
	r.bookings[bookingID] = b
	return &b, nil
}

func (r *BookingRepo) RemovePicture(_ context.Context, bookingID string, kind models.PictureKind, publicID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, database.ErrNotFound
	}
	list := b.AfterPictures
	if kind == models.PictureBefore {
		list = b.BeforePictures
	}
	kept := []models.Picture{}
	for _, p := range list {
		if p.PublicID != publicID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list) {
		return nil, database.ErrNotFound
	}
	if kind == models.PictureBefore {
		b.BeforePictures = kept
	} else {
		b.AfterPictures = kept
	}
	r.bookings[bookingID] = b
	return &b, nil
}

// UserRepo is an in-memory UserRepository.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]models.User)}
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = strings.ToLower(user.Email)
	r.users[user.ID] = *user
	return nil
}
