package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recruitment-portal/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	sess := Session{Token: "t1", Role: domain.RoleApplicant, PersonID: 42}
	require.NoError(t, store.Put(ctx, "sid-1", sess))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	got, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", Session{Token: "t1", Role: domain.RoleRecruiter, PersonID: 7}))
	require.NoError(t, store.Clear(ctx, "sid-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)

	// clearing again is a no-op
	require.NoError(t, store.Clear(ctx, "sid-1"))
}

func TestMemoryStorePutReplacesWholesale(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", Session{Token: "t1", Role: domain.RoleApplicant, PersonID: 42}))
	replacement := Session{Token: "t2", Role: domain.RoleRecruiter, PersonID: 7}
	require.NoError(t, store.Put(ctx, "sid-1", replacement))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestMemoryStorePartialTripleReadsAsAbsent(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", Session{Token: "t1"}))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

func TestMemoryStoreEntriesLapse(t *testing.T) {
	store := NewMemoryStore(30 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sid-1", Session{Token: "t1", Role: domain.RoleApplicant, PersonID: 42}))
	time.Sleep(60 * time.Millisecond)

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}
