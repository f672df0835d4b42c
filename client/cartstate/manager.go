// Package cartstate keeps a customer's cart in sync with the server.
package cartstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"detailing/client"
	"detailing/models"

	"go.uber.org/zap"
)

// Cart is the client-side view of the cart.
type Cart struct {
	Services         []models.Service   `json:"services"`
	BusyTimes        []models.TimeRange `json:"busyTimes"`
	SelectedDateTime *time.Time         `json:"selectedDateTime,omitempty"`
}

// Len is the number of services in the cart.
func (c Cart) Len() int { return len(c.Services) }

func emptyCart() Cart {
	return Cart{Services: []models.Service{}, BusyTimes: []models.TimeRange{}}
}

func (c Cart) clone() Cart {
	out := Cart{
		Services:  append([]models.Service{}, c.Services...),
		BusyTimes: append([]models.TimeRange{}, c.BusyTimes...),
	}
	if c.SelectedDateTime != nil {
		t := *c.SelectedDateTime
		out.SelectedDateTime = &t
	}
	return out
}

// fromResponse builds the cart a mutation response describes.
func fromResponse(resp *client.CartResponse) Cart {
	c := emptyCart()
	if resp == nil {
		return c
	}
	if resp.Services != nil {
		c.Services = append(c.Services, (*resp.Services)...)
	}
	if resp.BusyTimes != nil {
		c.BusyTimes = append(c.BusyTimes, (*resp.BusyTimes)...)
	}
	c.SelectedDateTime = resp.SelectedDateTime
	return c
}

// mergeResponse overlays the fields present in resp onto prev.
func mergeResponse(prev Cart, resp *client.CartResponse) Cart {
	next := prev.clone()
	if resp == nil {
		return next
	}
	if resp.Services != nil {
		next.Services = append([]models.Service{}, (*resp.Services)...)
	} else {
		next.Services = []models.Service{}
	}
	if resp.BusyTimes != nil && len(*resp.BusyTimes) > 0 {
		next.BusyTimes = append([]models.TimeRange{}, (*resp.BusyTimes)...)
	}
	if resp.SelectedDateTime != nil {
		next.SelectedDateTime = resp.SelectedDateTime
	}
	return next
}

// API is the subset of *client.Client the manager drives.
type API interface {
	GetCart(ctx context.Context) (*client.CartResponse, error)
	AddToCart(ctx context.Context, svc models.Service) (*client.CartResponse, error)
	RemoveFromCart(ctx context.Context, serviceID string) (*client.CartResponse, error)
	ClearCart(ctx context.Context) (*client.CartResponse, error)
	SelectDateTime(ctx context.Context, at time.Time) (*client.CartResponse, error)
	BusyTimes(ctx context.Context, req models.BusyTimesRequest) ([]models.TimeRange, error)
	CreateBooking(ctx context.Context, location string) (*models.Booking, error)
}

// ErrSuperseded is returned by GetCart and FetchBusyTimes when a newer request
// was issued before this one's response arrived. Writes the server accepted
// report success instead; only their stale response is discarded.
var ErrSuperseded = errors.New("response superseded by a newer request")

// Config holds the manager's collaborators. Zero values select a MemoryStore,
// a LogNotifier and a nop logger.
type Config struct {
	Store    Store
	Notifier Notifier
	Logger   *zap.Logger
}

// Manager owns the local cart and applies server responses to it.
type Manager struct {
	api      API
	store    Store
	notifier Notifier
	logger   *zap.Logger

	mu       sync.Mutex
	cart     Cart
	cartSeq  uint64
	busySeq  uint64
	loggedIn bool
}

// NewManager restores the last snapshot from cfg.Store. A corrupt snapshot is
// logged and replaced by an empty cart.
func NewManager(api API, cfg Config) *Manager {
	m := &Manager{
		api:      api,
		store:    cfg.Store,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		cart:     emptyCart(),
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.store == nil {
		m.store = &MemoryStore{}
	}
	if m.notifier == nil {
		m.notifier = LogNotifier{Logger: m.logger}
	}

	saved, ok, err := m.store.Load()
	switch {
	case errors.Is(err, ErrCorruptSnapshot):
		m.logger.Warn("cartstate: discarding corrupt snapshot", zap.Error(err))
		m.persist(m.cart)
	case err != nil:
		m.logger.Warn("cartstate: failed to load snapshot", zap.Error(err))
	case ok:
		m.cart = saved.clone()
	}
	return m
}

func (m *Manager) persist(c Cart) {
	if err := m.store.Save(c); err != nil {
		m.logger.Warn("cartstate: failed to save snapshot", zap.Error(err))
	}
}

// Cart returns a copy of the current cart.
func (m *Manager) Cart() Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.clone()
}

// CartLength is the number of services in the cart.
func (m *Manager) CartLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Len()
}

// beginCart reserves the next cart sequence number.
func (m *Manager) beginCart() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cartSeq++
	return m.cartSeq
}

// applyCart stores next via update if seq is still the latest cart request.
func (m *Manager) applyCart(seq uint64, update func(prev Cart) Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.cartSeq {
		m.logger.Debug("cartstate: dropping superseded cart response", zap.Uint64("seq", seq), zap.Uint64("latest", m.cartSeq))
		return ErrSuperseded
	}
	m.cart = update(m.cart)
	m.persist(m.cart)
	return nil
}

// applyWrite is applyCart for requests the server has already applied.
func (m *Manager) applyWrite(seq uint64, update func(prev Cart) Cart) error {
	if err := m.applyCart(seq, update); err != nil && !errors.Is(err, ErrSuperseded) {
		return err
	}
	return nil
}

// GetCart refreshes the cart from the server, keeping local busy times when
// the response carries none.
func (m *Manager) GetCart(ctx context.Context) error {
	seq := m.beginCart()
	resp, err := m.api.GetCart(ctx)
	if err != nil {
		m.logger.Error("cartstate: error fetching cart", zap.Error(err))
		return err
	}
	return m.applyCart(seq, func(prev Cart) Cart { return mergeResponse(prev, resp) })
}

// AddItem adds svc to the cart.
func (m *Manager) AddItem(ctx context.Context, svc models.Service) error {
	seq := m.beginCart()
	resp, err := m.api.AddToCart(ctx, svc)
	if err != nil {
		m.logger.Error("cartstate: failed to add item to cart", zap.String("serviceID", svc.ID), zap.Error(err))
		m.notifier.Error("Failed to add item to cart", err)
		return err
	}
	if err := m.applyWrite(seq, func(Cart) Cart { return fromResponse(resp) }); err != nil {
		return err
	}
	m.notifier.Success("Item added to cart")
	return nil
}

// RemoveItem removes svc from the cart. It does nothing when the cart is empty.
func (m *Manager) RemoveItem(ctx context.Context, svc models.Service) error {
	if m.CartLength() == 0 {
		return nil
	}
	seq := m.beginCart()
	resp, err := m.api.RemoveFromCart(ctx, svc.ID)
	if err != nil {
		m.logger.Error("cartstate: failed to remove item from cart", zap.String("serviceID", svc.ID), zap.Error(err))
		m.notifier.Error("Failed to remove item from cart", err)
		return err
	}
	if err := m.applyWrite(seq, func(Cart) Cart { return fromResponse(resp) }); err != nil {
		return err
	}
	m.notifier.Success("Item removed from cart")
	return nil
}

// ClearCart empties the cart on the server and locally.
func (m *Manager) ClearCart(ctx context.Context) error {
	seq := m.beginCart()
	resp, err := m.api.ClearCart(ctx)
	if err != nil {
		m.logger.Error("cartstate: failed to clear cart", zap.Error(err))
		return err
	}
	return m.applyWrite(seq, func(Cart) Cart { return fromResponse(resp) })
}

// SelectDateTime stores the requested appointment start.
func (m *Manager) SelectDateTime(ctx context.Context, at time.Time) error {
	seq := m.beginCart()
	resp, err := m.api.SelectDateTime(ctx, at)
	if err != nil {
		m.logger.Error("cartstate: failed to select date time", zap.Error(err))
		m.notifier.Error("Failed to select date and time", err)
		return err
	}
	return m.applyWrite(seq, func(prev Cart) Cart {
		next := fromResponse(resp)
		next.BusyTimes = prev.clone().BusyTimes
		return next
	})
}

// FetchBusyTimes replaces the cart's busy times with the server's answer.
func (m *Manager) FetchBusyTimes(ctx context.Context, location string, expectedMinutes int, serviceNames []string) error {
	m.mu.Lock()
	m.busySeq++
	seq := m.busySeq
	m.mu.Unlock()

	busy, err := m.api.BusyTimes(ctx, models.BusyTimesRequest{
		CustomerLocation:       location,
		ExpectedTimeToComplete: expectedMinutes,
		ServiceNames:           serviceNames,
	})
	if err != nil {
		m.logger.Error("cartstate: error fetching busy times", zap.Error(err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.busySeq {
		return ErrSuperseded
	}
	m.cart.BusyTimes = append([]models.TimeRange{}, busy...)
	m.persist(m.cart)
	return nil
}

// Checkout books the cart and resets it locally.
func (m *Manager) Checkout(ctx context.Context, location string) (*models.Booking, error) {
	seq := m.beginCart()
	b, err := m.api.CreateBooking(ctx, location)
	if err != nil {
		m.logger.Error("cartstate: checkout failed", zap.Error(err))
		m.notifier.Error("Failed to book appointment", err)
		return nil, err
	}
	if err := m.applyWrite(seq, func(Cart) Cart { return emptyCart() }); err != nil {
		return b, err
	}
	m.notifier.Success("Appointment booked")
	return b, nil
}

// OnLogin fetches the cart the first time loggedIn is true.
func (m *Manager) OnLogin(ctx context.Context, loggedIn bool) error {
	if !loggedIn {
		return nil
	}
	m.mu.Lock()
	first := !m.loggedIn
	m.loggedIn = true
	m.mu.Unlock()
	if !first {
		return nil
	}
	return m.GetCart(ctx)
}
