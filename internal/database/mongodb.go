package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and verifies it with a ping. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type connection struct {
	client *mongo.Client
	db     *mongo.Database
}

// Handle is the process-wide document store handle. It is either connected
// or absent; the zero value is absent. It is set at most once and safe for
// concurrent readers.
type Handle struct {
	conn atomic.Pointer[connection]
}

// Set stores a connected client and the database to use. Later calls are ignored
// and report false.
func (h *Handle) Set(client *mongo.Client, database string) bool {
	return h.conn.CompareAndSwap(nil, &connection{client: client, db: client.Database(database)})
}

// Database returns the connected database, or false when no connection was established.
func (h *Handle) Database() (*mongo.Database, bool) {
	c := h.conn.Load()
	if c == nil {
		return nil, false
	}
	return c.db, true
}

// Connected reports whether the handle holds a connection.
func (h *Handle) Connected() bool {
	return h.conn.Load() != nil
}

// Connect makes a single attempt to reach uri and stores the result in the
// handle. The handle stays absent on failure; no retry is scheduled.
func (h *Handle) Connect(ctx context.Context, uri, database string, timeout time.Duration) error {
	client, err := ConnectMongo(ctx, uri, timeout)
	if err != nil {
		return err
	}
	if !h.Set(client, database) {
		_ = client.Disconnect(ctx)
	}
	return nil
}

// Close disconnects the client if one was stored.
func (h *Handle) Close(ctx context.Context) error {
	c := h.conn.Load()
	if c == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
