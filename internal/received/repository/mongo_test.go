package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xpres/xpres-server/internal/received"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert returns generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepo(mt.Coll)

		id, err := repo.Insert(ctx, received.Document{"name": "a", "n": 1})
		require.NoError(mt, err)
		require.IsType(mt, primitive.ObjectID{}, id)
	})

	mt.Run("insert surfaces write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := NewMongoRepo(mt.Coll)

		_, err := repo.Insert(ctx, received.Document{"_id": "dup"})
		require.Error(mt, err)
		require.Contains(mt, err.Error(), "duplicate key")
	})

	mt.Run("list decodes documents in server order", func(mt *mtest.T) {
		older, newer := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: newer}, {Key: "name", Value: "second"}},
			bson.D{{Key: "_id", Value: older}, {Key: "name", Value: "first"}},
		))
		repo := NewMongoRepo(mt.Coll)

		list, err := repo.List(ctx, received.ListLimit)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, newer, list[0]["_id"])
		require.Equal(mt, "second", list[0]["name"])
		require.Equal(mt, "first", list[1]["name"])

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "find", started.CommandName)
		sortDoc, ok := started.Command.Lookup("sort").DocumentOK()
		require.True(mt, ok, "find carries a sort document")
		keys, err := sortDoc.Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 1)
		require.Equal(mt, received.IDField, keys[0].Key())
		require.Equal(mt, int64(-1), keys[0].Value().AsInt64())
		require.Equal(mt, int64(received.ListLimit), started.Command.Lookup("limit").AsInt64())
	})

	mt.Run("list empty collection", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewMongoRepo(mt.Coll)

		list, err := repo.List(ctx, received.ListLimit)
		require.NoError(mt, err)
		require.NotNil(mt, list)
		require.Empty(mt, list)
	})

	mt.Run("list surfaces command errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))
		repo := NewMongoRepo(mt.Coll)

		_, err := repo.List(ctx, received.ListLimit)
		require.Error(mt, err)
		require.Contains(mt, err.Error(), "not authorized")
	})
}
