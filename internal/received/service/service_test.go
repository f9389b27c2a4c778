package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xpres/xpres-server/internal/database"
	"github.com/xpres/xpres-server/internal/received"
)

func TestMemoryServiceAddsCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.(*receivedService).now = func() time.Time { return fixed }

	payload := received.Document{"hello": "world"}
	id, err := svc.Insert(ctx, payload)
	require.NoError(t, err)
	require.NotNil(t, id)
	require.NotContains(t, payload, received.CreatedAtField)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "world", list[0]["hello"])
	require.Equal(t, fixed, list[0][received.CreatedAtField])
	require.Equal(t, id, list[0][received.IDField])
}

func TestMongoServiceUnavailableWithoutConnection(t *testing.T) {
	svc := NewMongoService(&database.Handle{})

	_, err := svc.Insert(context.Background(), received.Document{"a": 1})
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = svc.List(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
