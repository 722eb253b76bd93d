package guest

import (
	"context"
	"sync"
	"time"

	"ramani-storefront/models"
	"ramani-storefront/services"
)

type entry struct {
	session   models.GuestSession
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when no Redis address is
// configured. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.GuestSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, services.ErrSessionNotFound
	}
	if s.ttl > 0 && !s.now().Before(e.expiresAt) {
		delete(s.sessions, id)
		return nil, services.ErrSessionNotFound
	}
	session := e.session
	session.Cart = append([]models.GuestCartItem(nil), e.session.Cart...)
	session.Wishlist = append([]string(nil), e.session.Wishlist...)
	return &session, nil
}

func (s *MemoryStore) Set(_ context.Context, session *models.GuestSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	copied.Cart = append([]models.GuestCartItem(nil), session.Cart...)
	copied.Wishlist = append([]string(nil), session.Wishlist...)
	s.sessions[session.ID] = entry{session: copied, expiresAt: s.now().Add(s.ttl)}
	s.sweep()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// sweep drops expired sessions. Callers hold mu.
func (s *MemoryStore) sweep() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
