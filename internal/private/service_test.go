package private

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seguros/internal/ledger/memory"
	dErrors "seguros/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(store, logger), store
}

func TestStoreThenGetReturnsExactBytes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	payload := []byte(`{"ssn":"123-45-6789","medical":"\x00binary\xff"}`)

	require.NoError(t, svc.Store(ctx, "POL-1", payload))

	got, err := svc.Get(ctx, "POL-1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestGetWithoutPriorWriteFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "POL-1")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	assert.EqualError(t, err, "no private data exists for policy POL-1")
}

func TestStoreDoesNotRequirePublicPolicy(t *testing.T) {
	// Partitions are independent: a private entry may exist for a policy id
	// the public ledger has never seen.
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, "POL-GHOST", []byte("secret")))

	public, err := store.Get(ctx, "POL-GHOST")
	require.NoError(t, err)
	assert.Nil(t, public)

	got, err := svc.Get(ctx, "POL-GHOST")
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)
}

func TestStoreOverwritesPriorPayload(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Store(ctx, "POL-1", []byte("v1")))
	require.NoError(t, svc.Store(ctx, "POL-1", []byte("v2")))

	got, err := svc.Get(ctx, "POL-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestStoreRequiresPolicyID(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Store(context.Background(), "", []byte("x"))
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}
