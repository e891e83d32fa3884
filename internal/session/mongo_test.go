package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"go-gin-shop/internal/domain"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	sess := testSession(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	mt.Run("save", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))
		require.NoError(mt, s.Save(ctx, sess))
	})

	mt.Run("get", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".sessions", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: sess.Token},
			{Key: "userId", Value: sess.UserID},
			{Key: "userName", Value: sess.UserName},
			{Key: "createdAt", Value: sess.CreatedAt},
			{Key: "expiresAt", Value: sess.ExpiresAt},
		}))

		got, err := s.Get(ctx, sess.Token)
		require.NoError(mt, err)
		assert.Equal(mt, sess.UserID, got.UserID)
		assert.Equal(mt, sess.UserName, got.UserName)
		assert.True(mt, sess.ExpiresAt.Equal(got.ExpiresAt))
	})

	mt.Run("get unknown token", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".sessions", mtest.FirstBatch))

		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, s.Delete(ctx, sess.Token))
	})

	mt.Run("delete failure", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 91, Message: "shutdown in progress"}))
		assert.ErrorIs(mt, s.Delete(ctx, sess.Token), domain.ErrStoreUnavailable)
	})
}
