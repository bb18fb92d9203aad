package client

import (
	"context"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNotSignedIn is returned by cart mutations attempted while anonymous; no
// network call is made in that case.
var ErrNotSignedIn = errors.New("not signed in")

// CartItem mirrors one authoritative cart line. Subtotal comes verbatim from
// the server; it is never recomputed here.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Cart mirrors the server's cart. Total is the authoritative sum; the client
// never derives it from prices and quantities.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

type cartEnvelope struct {
	Cart Cart `json:"cart"`
}

// SessionReader is the cart manager's view of the session.
type SessionReader interface {
	IsAuthenticated() bool
}

type addItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartManager owns the local mirror of the current identity's cart. Every
// successful mutation replaces the mirror wholesale with the server's
// response; failures leave it untouched. Mutations are serialized: one
// request in flight at a time, later calls wait for the prior one to settle.
// A response that arrives after the mirror was reset (logout, 401) is
// discarded rather than applied.
type CartManager struct {
	api      *Client
	session  SessionReader
	notifier Notifier

	// Held for the full request/response cycle of every mutation.
	mutationMu sync.Mutex

	mu   sync.RWMutex
	cart Cart
	busy bool
	gen  uint64 // bumped on reset; stale responses carry the old value
}

// NewCartManager wires the explicit collaborators. Use WatchSession to reload
// or reset the mirror on session transitions.
func NewCartManager(api *Client, session SessionReader, notifier Notifier) *CartManager {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &CartManager{api: api, session: session, notifier: notifier}
}

// WatchSession subscribes to session transitions: authenticated triggers a
// full reload, anonymous resets the mirror. Never an incremental merge.
func (m *CartManager) WatchSession(s *Session) {
	s.OnChange(func(state State) {
		switch state {
		case StateAuthenticated:
			if err := m.Refresh(context.Background()); err != nil {
				log.WithError(err).Debug("cart reload after sign-in failed")
			}
		case StateAnonymous:
			m.Reset()
		}
	})
}

// Refresh fetches the authoritative cart, replacing local state wholesale.
// It is a no-op while anonymous and fails soft: a failed background refresh
// is logged, not surfaced, and the prior mirror is kept.
func (m *CartManager) Refresh(ctx context.Context) error {
	if !m.session.IsAuthenticated() {
		return nil
	}

	gen := m.generation()
	var resp cartEnvelope
	if err := m.api.do(ctx, "GET", "/cart", nil, &resp, true); err != nil {
		log.WithError(err).Debug("cart refresh failed")
		return err
	}

	m.applyIfCurrent(gen, resp.Cart)
	return nil
}

// AddToCart resolves the effective unit price and submits the add request.
// The mirror is replaced only with the server's confirmed response.
func (m *CartManager) AddToCart(ctx context.Context, p Product, quantity int) error {
	if !m.session.IsAuthenticated() {
		m.notifier.Info("Please sign in to add items to your cart")
		return ErrNotSignedIn
	}

	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	m.setBusy(true)
	defer m.setBusy(false)

	req := addItemRequest{
		ProductID: p.ID,
		Quantity:  quantity,
		Name:      p.Name,
		Price:     EffectivePrice(p),
		Unit:      p.Unit,
	}

	gen := m.generation()
	var resp cartEnvelope
	if err := m.api.Post(ctx, "/cart/add", req, &resp); err != nil {
		log.WithError(err).WithField("product_id", p.ID).Debug("add to cart failed")
		return err
	}

	if m.applyIfCurrent(gen, resp.Cart) {
		m.notifier.Success(p.Name + " added to cart")
	}
	return nil
}

// UpdateQuantity sets the absolute target quantity for a line; zero is valid
// and removes it server-side.
func (m *CartManager) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if !m.session.IsAuthenticated() {
		m.notifier.Info("Please sign in to update your cart")
		return ErrNotSignedIn
	}

	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	m.setBusy(true)
	defer m.setBusy(false)

	gen := m.generation()
	var resp cartEnvelope
	path := "/cart/item/" + url.PathEscape(productID)
	if err := m.api.Put(ctx, path, updateQuantityRequest{Quantity: quantity}, &resp); err != nil {
		log.WithError(err).WithField("product_id", productID).Debug("quantity update failed")
		return err
	}

	m.applyIfCurrent(gen, resp.Cart)
	return nil
}

// RemoveFromCart deletes a line.
func (m *CartManager) RemoveFromCart(ctx context.Context, productID string) error {
	if !m.session.IsAuthenticated() {
		m.notifier.Info("Please sign in to update your cart")
		return ErrNotSignedIn
	}

	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	m.setBusy(true)
	defer m.setBusy(false)

	gen := m.generation()
	var resp cartEnvelope
	path := "/cart/item/" + url.PathEscape(productID)
	if err := m.api.Delete(ctx, path, &resp); err != nil {
		log.WithError(err).WithField("product_id", productID).Debug("remove from cart failed")
		return err
	}

	if m.applyIfCurrent(gen, resp.Cart) {
		m.notifier.Success("Item removed from cart")
	}
	return nil
}

// ClearCart empties the cart. On success the mirror resets immediately; no
// re-fetch.
func (m *CartManager) ClearCart(ctx context.Context) error {
	if !m.session.IsAuthenticated() {
		m.notifier.Info("Please sign in to update your cart")
		return ErrNotSignedIn
	}

	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	m.setBusy(true)
	defer m.setBusy(false)

	if err := m.api.Delete(ctx, "/cart/clear", nil); err != nil {
		log.WithError(err).Debug("clear cart failed")
		return err
	}

	m.Reset()
	m.notifier.Success("Cart cleared")
	return nil
}

// GetItemQuantity is a pure lookup against the mirror; 0 when absent. Never
// triggers network I/O.
func (m *CartManager) GetItemQuantity(productID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, item := range m.cart.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// ItemsCount is the badge value: the sum of all line quantities.
func (m *CartManager) ItemsCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, item := range m.cart.Items {
		count += item.Quantity
	}
	return count
}

// Cart returns a copy of the current mirror.
func (m *CartManager) Cart() Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := Cart{Total: m.cart.Total, Items: make([]CartItem, len(m.cart.Items))}
	copy(out.Items, m.cart.Items)
	return out
}

// Busy reports whether a mutation is in flight; callers should disable the
// triggering control while true.
func (m *CartManager) Busy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.busy
}

// Reset drops the mirror to an empty cart without any network call and
// invalidates responses still in flight.
func (m *CartManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.cart = Cart{Items: []CartItem{}}
}

func (m *CartManager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// applyIfCurrent installs the server's cart unless the mirror was reset
// while the request was in flight; it reports whether the cart was applied
// so callers can skip user-facing confirmations for discarded responses.
func (m *CartManager) applyIfCurrent(gen uint64, cart Cart) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return false
	}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	m.cart = cart
	return true
}

func (m *CartManager) replace(cart Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	m.cart = cart
}

func (m *CartManager) setBusy(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = v
}
