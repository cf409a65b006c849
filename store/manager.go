package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
	"time"

	"github.com/furqanahmad03/e-store-api/catalog"
	"github.com/furqanahmad03/e-store-api/metrics"
	"github.com/furqanahmad03/e-store-api/mirror"
	"github.com/furqanahmad03/e-store-api/models"
)

// SweepInterval is how often expired sessions are removed.
const SweepInterval = 15 * time.Minute

// Manager owns the live sessions, keyed by session id. Sessions are
// hydrated on first access and evicted when they expire.
type Manager struct {
	repo     Repository
	catalog  catalog.Catalog
	mirror   mirror.Mirror
	notifier Notifier
	metrics  *metrics.AppMetrics

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(repo Repository, cat catalog.Catalog, mir mirror.Mirror, notifier Notifier, m *metrics.AppMetrics) *Manager {
	return &Manager{
		repo:     repo,
		catalog:  cat,
		mirror:   mir,
		notifier: notifier,
		metrics:  m,
		sessions: make(map[string]*Session),
	}
}

// CreateSession registers a new browsing session with the given lifetime.
func (m *Manager) CreateSession(ctx context.Context, ttl time.Duration) (*models.Session, error) {
	session := &models.Session{
		ID:        "sess_" + randomHex(16),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := m.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Session returns the hydrated session for the id, creating the in-memory
// container on first access.
func (m *Manager) Session(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = NewSession(sessionID, m.repo, m.catalog, m.mirror, m.notifier, m.metrics)
		m.sessions[sessionID] = s
	}
	m.mu.Unlock()

	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// SessionForOrder resolves the owning session of an order, for admin
// actions that arrive without a session token.
func (m *Manager) SessionForOrder(ctx context.Context, orderID string) (*Session, error) {
	sessionID, err := m.repo.SessionIDForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return m.Session(ctx, sessionID)
}

// Evict drops the in-memory container; persisted state is untouched.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Sweep deletes expired sessions and their state, one pass.
func (m *Manager) Sweep(ctx context.Context) {
	expired, err := m.repo.ExpiredSessions(ctx, time.Now())
	if err != nil {
		log.Printf("session sweep: %v", err)
		return
	}
	for _, id := range expired {
		if err := m.repo.DeleteSession(ctx, id); err != nil {
			log.Printf("session sweep: delete %s: %v", id, err)
			continue
		}
		m.Evict(id)
	}
	if len(expired) > 0 {
		log.Printf("session sweep: removed %d expired sessions", len(expired))
	}
}

// StartSweeper runs Sweep on a ticker until the context is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_session"
	}
	return hex.EncodeToString(bytes)
}
