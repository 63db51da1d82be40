package sessionstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeeshop/internal/adapters/out/memory/sessionstore"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/product"
	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/pkg/errs"
)

func newSession(t *testing.T, identity string, lastActivity time.Time) *session.Session {
	t.Helper()
	s, err := session.NewSession(identity, lastActivity)
	require.NoError(t, err)
	return s
}

func TestInMemorySessionStore_SaveAndGet(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()
	ctx := context.Background()

	saved := newSession(t, "user-1", time.Now())
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.NotSame(t, saved, loaded)
	assert.Equal(t, saved.Identity(), loaded.Identity())
	assert.Equal(t, saved.State(), loaded.State())
	assert.Equal(t, saved.LastActivity(), loaded.LastActivity())
}

func TestInMemorySessionStore_StoresSnapshots(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()
	ctx := context.Background()

	p := &product.Product{
		ID:        kernel.NewUUID(),
		Name:      "Latte",
		Category:  product.CategoryHot,
		BasePrice: 4.75,
		Sizes:     []product.Size{{Name: "large", PriceModifier: 0.50}},
		Available: true,
	}

	saved := newSession(t, "user-1", time.Now())
	_, err := saved.Apply(session.SelectProduct{ProductID: p.ID}, p)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, saved))

	// Mutating the caller's session after Save must not leak into the store.
	_, err = saved.Apply(session.Navigate{To: session.Cancel}, p)
	require.NoError(t, err)

	loaded, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, session.StateProductSelected, loaded.State())

	// Neither may mutating a loaded session without saving it back.
	_, err = loaded.Apply(session.Navigate{To: session.Cancel}, p)
	require.NoError(t, err)

	reloaded, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, session.StateProductSelected, reloaded.State())
	require.NotNil(t, reloaded.Customization())
	assert.True(t, reloaded.Customization().ProductID().IsEqual(p.ID))
}

func TestInMemorySessionStore_GetMissing_ReturnsNotFound(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()

	_, err := store.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestInMemorySessionStore_SaveRejectsUnconstructedSession(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()

	err := store.Save(context.Background(), &session.Session{})
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrSessionIsNotConstructed)
}

func TestInMemorySessionStore_Delete(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession(t, "user-1", time.Now())))
	require.NoError(t, store.Delete(ctx, "user-1"))

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	assert.NoError(t, store.Delete(ctx, "user-1"))
}

func TestInMemorySessionStore_PruneExpired(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()
	ctx := context.Background()
	now := time.Now()
	idleTimeout := 30 * time.Minute

	require.NoError(t, store.Save(ctx, newSession(t, "idle-1", now.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, newSession(t, "idle-2", now.Add(-31*time.Minute))))
	require.NoError(t, store.Save(ctx, newSession(t, "active", now.Add(-time.Minute))))

	pruned, err := store.PruneExpired(ctx, now, idleTimeout)
	require.NoError(t, err)
	assert.Equal(t, 2, pruned)

	_, err = store.Get(ctx, "idle-1")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = store.Get(ctx, "idle-2")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = store.Get(ctx, "active")
	assert.NoError(t, err)
}

func TestInMemorySessionStore_PruneExpired_EmptyStore(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()

	pruned, err := store.PruneExpired(context.Background(), time.Now(), time.Minute)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}

func TestInMemorySessionStore_ConcurrentAccess(t *testing.T) {
	store := sessionstore.NewInMemorySessionStore()
	ctx := context.Background()

	sessions := make([]*session.Session, 10)
	for i := range sessions {
		sessions[i] = newSession(t, string(rune('a'+i)), time.Now())
	}

	done := make(chan struct{})
	for _, s := range sessions {
		go func(s *session.Session) {
			defer func() { done <- struct{}{} }()
			assert.NoError(t, store.Save(ctx, s))
			_, err := store.Get(ctx, s.Identity())
			assert.NoError(t, err)
			assert.NoError(t, store.Delete(ctx, s.Identity()))
		}(s)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
