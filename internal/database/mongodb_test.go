package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestHandleZeroValueIsAbsent(t *testing.T) {
	var h Handle
	db, ok := h.Database()
	require.False(t, ok)
	require.Nil(t, db)
	require.False(t, h.Connected())
	require.NoError(t, h.Close(context.Background()))
}

func TestHandleSetOnce(t *testing.T) {
	// mongo.Connect does not dial until the first operation
	c1, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	c2, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)

	var h Handle
	require.True(t, h.Set(c1, "first"))
	require.False(t, h.Set(c2, "second"))

	db, ok := h.Database()
	require.True(t, ok)
	require.Equal(t, "first", db.Name())
	require.True(t, h.Connected())

	_ = c2.Disconnect(context.Background())
	require.NoError(t, h.Close(context.Background()))
}

func TestHandleConnectFailureLeavesAbsent(t *testing.T) {
	var h Handle
	err := h.Connect(context.Background(), "mongodb://127.0.0.1:1/xpres", "xpres", 200*time.Millisecond)
	require.Error(t, err)
	require.False(t, h.Connected())
}
