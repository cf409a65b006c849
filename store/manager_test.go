package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/furqanahmad03/e-store-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(env *testEnv) *Manager {
	return NewManager(env.repo, env.catalog, env.mirror, env.notifier, nil)
}

func TestManagerCreateSession(t *testing.T) {
	env := newTestEnv()
	mgr := newTestManager(env)

	session, err := mgr.CreateSession(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.ID, "sess_"))
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestManagerReusesContainers(t *testing.T) {
	env := newTestEnv(models.Product{ID: 1, Name: "Mug", Price: 10, Stock: 5})
	mgr := newTestManager(env)

	a, err := mgr.Session(context.Background(), "sess_a")
	require.NoError(t, err)
	require.NoError(t, a.AddToCart(context.Background(), 1, 2))

	b, err := mgr.Session(context.Background(), "sess_a")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 2, b.CartCount())

	other, err := mgr.Session(context.Background(), "sess_b")
	require.NoError(t, err)
	assert.NotSame(t, a, other)
	assert.Equal(t, 0, other.CartCount())
}

func TestManagerSessionForOrder(t *testing.T) {
	env := newTestEnv(models.Product{ID: 1, Name: "Mug", Price: 10, Stock: 5})
	mgr := newTestManager(env)

	s, err := mgr.Session(context.Background(), "sess_a")
	require.NoError(t, err)
	require.NoError(t, s.AddToCart(context.Background(), 1, 1))
	order, err := s.CreateOrder(context.Background(), checkoutCard())
	require.NoError(t, err)

	owner, err := mgr.SessionForOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "sess_a", owner.ID())

	_, err = mgr.SessionForOrder(context.Background(), "missing")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestManagerSweepRemovesExpiredSessions(t *testing.T) {
	env := newTestEnv(models.Product{ID: 1, Name: "Mug", Price: 10, Stock: 5})
	mgr := newTestManager(env)
	ctx := context.Background()

	expired, err := mgr.CreateSession(ctx, -time.Hour)
	require.NoError(t, err)
	live, err := mgr.CreateSession(ctx, time.Hour)
	require.NoError(t, err)

	s, err := mgr.Session(ctx, expired.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddToCart(ctx, 1, 1))

	mgr.Sweep(ctx)

	ids, err := env.repo.ExpiredSessions(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, ids)

	state, err := env.repo.LoadSession(ctx, expired.ID)
	require.NoError(t, err)
	assert.Empty(t, state.Cart)

	liveIDs, err := env.repo.ExpiredSessions(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{live.ID}, liveIDs)
}

func TestManagerEvictKeepsPersistedState(t *testing.T) {
	env := newTestEnv(models.Product{ID: 1, Name: "Mug", Price: 10, Stock: 5})
	mgr := newTestManager(env)
	ctx := context.Background()

	a, err := mgr.Session(ctx, "sess_a")
	require.NoError(t, err)
	require.NoError(t, a.AddToCart(ctx, 1, 2))

	mgr.Evict("sess_a")

	b, err := mgr.Session(ctx, "sess_a")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, b.CartCount())
}
