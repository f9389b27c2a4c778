package repository

import (
	"context"
	"sync"

	"github.com/xpres/xpres-server/internal/received"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps documents in insertion order. It backs unit tests and the
// handler tests; ids are ObjectIDs just like the Mongo repository assigns.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs []received.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(_ context.Context, doc received.Document) (interface{}, error) {
	stored := doc.Clone()
	if _, ok := stored[received.IDField]; !ok {
		stored[received.IDField] = primitive.NewObjectID()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, stored)
	return stored[received.IDField], nil
}

// List returns up to limit documents, most recently inserted first.
func (m *MemoryRepo) List(_ context.Context, limit int64) ([]received.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := int64(len(m.docs))
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]received.Document, 0, n)
	for i := len(m.docs) - 1; i >= 0 && int64(len(out)) < n; i-- {
		out = append(out, m.docs[i].Clone())
	}
	return out, nil
}
