package repository

import (
	"context"
	"fmt"

	"github.com/xpres/xpres-server/internal/received"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the persistence contract for received documents.
type Repository interface {
	Insert(ctx context.Context, doc received.Document) (interface{}, error)
	List(ctx context.Context, limit int64) ([]received.Document, error)
}

// MongoRepo implements Repository on a MongoDB collection. Documents are
// stored as-is; the driver assigns an ObjectID when the payload has no _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, doc received.Document) (interface{}, error) {
	res, err := m.col.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", m.col.Name(), err)
	}
	return res.InsertedID, nil
}

// List returns up to limit documents ordered by descending _id, which for
// driver-generated ObjectIDs is newest first.
func (m *MongoRepo) List(ctx context.Context, limit int64) ([]received.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: received.IDField, Value: -1}}).SetLimit(limit)
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", m.col.Name(), err)
	}
	defer cur.Close(ctx)

	out := []received.Document{}
	for cur.Next(ctx) {
		var d bson.M
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", m.col.Name(), err)
		}
		out = append(out, received.Document(d))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", m.col.Name(), err)
	}
	return out, nil
}
