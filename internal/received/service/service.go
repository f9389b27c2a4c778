package service

import (
	"context"
	"errors"
	"time"

	"github.com/xpres/xpres-server/internal/database"
	"github.com/xpres/xpres-server/internal/received"
	"github.com/xpres/xpres-server/internal/received/repository"
)

var (
	// ErrUnavailable is returned without touching the store when no
	// connection was established at startup.
	ErrUnavailable = errors.New("document store unavailable")
)

// Service defines the received-document operations used by the handler layer.
type Service interface {
	Insert(ctx context.Context, payload received.Document) (interface{}, error)
	List(ctx context.Context) ([]received.Document, error)
}

// repoFunc resolves the repository for one operation; ok=false means the
// store is unavailable.
type repoFunc func() (repository.Repository, bool)

// NewMemoryService returns a Service backed by the in-memory repository. It is always available.
func NewMemoryService() Service {
	repo := repository.NewMemoryRepo()
	return &receivedService{repo: func() (repository.Repository, bool) { return repo, true }, now: time.Now}
}

// NewMongoService returns a Service over the "received" collection of the
// handle's database. The handle is consulted on every call, so a connection
// that completes after startup becomes visible without rewiring.
func NewMongoService(h *database.Handle) Service {
	return &receivedService{
		repo: func() (repository.Repository, bool) {
			db, ok := h.Database()
			if !ok {
				return nil, false
			}
			return repository.NewMongoRepo(db.Collection(received.CollectionName)), true
		},
		now: time.Now,
	}
}

type receivedService struct {
	repo repoFunc
	now  func() time.Time
}

// Insert stores a copy of payload with a created_at timestamp and returns the assigned id.
func (s *receivedService) Insert(ctx context.Context, payload received.Document) (interface{}, error) {
	repo, ok := s.repo()
	if !ok {
		return nil, ErrUnavailable
	}
	doc := payload.Clone()
	doc[received.CreatedAtField] = s.now().UTC()
	return repo.Insert(ctx, doc)
}

// List returns the newest documents first, at most received.ListLimit of them.
func (s *receivedService) List(ctx context.Context) ([]received.Document, error) {
	repo, ok := s.repo()
	if !ok {
		return nil, ErrUnavailable
	}
	return repo.List(ctx, received.ListLimit)
}
