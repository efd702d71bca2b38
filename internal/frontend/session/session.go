// Package session holds the storefront's per-browser session: the API key
// obtained at login, the authenticated-user snapshot, the cached order view
// and any pending flash notices.
package session

import (
	"github.com/shopmesh/shopmesh/internal/model"
)

// Flash levels shown to the user.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the state for one browser session, keyed by an opaque cookie
// token. It is created blank at first contact; the credential is set on
// successful login and cleared on logout. Two concurrent requests for the
// same session are resolved last-writer-wins by the store.
type Session struct {
	ID      string               `json:"id"`
	APIKey  string               `json:"api_key,omitempty"`
	User    *model.User          `json:"user,omitempty"`
	Order   *model.OrderSnapshot `json:"order,omitempty"`
	// LastOrder is the completed order held for the confirmation view,
	// consumed exactly once by PopCompletedOrder.
	LastOrder *model.OrderSnapshot `json:"last_order,omitempty"`
	Flashes   []Flash              `json:"flashes,omitempty"`
}

func New(id string) *Session {
	return &Session{ID: id}
}

// IsAuthenticated reports whether the session holds a login credential.
func (s *Session) IsAuthenticated() bool {
	return s.APIKey != ""
}

// Credential returns the API key and whether one is present.
func (s *Session) Credential() (string, bool) {
	return s.APIKey, s.APIKey != ""
}

func (s *Session) SetCredential(key string) {
	s.APIKey = key
}

// Clear drops the credential and user snapshot, ending the login. Cached
// order and pending flashes survive so the user keeps their notices.
func (s *Session) Clear() {
	s.APIKey = ""
	s.User = nil
}

// CachedOrder returns the session's order view, or the empty default
// {items:{}, total:0} when none is cached.
func (s *Session) CachedOrder() model.OrderSnapshot {
	if s.Order == nil {
		return model.EmptyOrder()
	}
	return *s.Order
}

func (s *Session) SetCachedOrder(order model.OrderSnapshot) {
	s.Order = &order
}

func (s *Session) ClearCachedOrder() {
	s.Order = nil
}

// SetCompletedOrder parks the final order state for the confirmation view.
func (s *Session) SetCompletedOrder(order model.OrderSnapshot) {
	s.LastOrder = &order
}

// PopCompletedOrder consumes the completed order. The second call for the
// same checkout returns ok=false.
func (s *Session) PopCompletedOrder() (model.OrderSnapshot, bool) {
	if s.LastOrder == nil {
		return model.EmptyOrder(), false
	}
	order := *s.LastOrder
	s.LastOrder = nil
	return order, true
}

// Flash queues a one-shot notice.
func (s *Session) Flash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// PopFlashes returns the pending notices and clears them.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}
