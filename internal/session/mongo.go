package session

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-gin-shop/internal/core/database"
	"go-gin-shop/internal/domain"
)

type sessionDoc struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	UserName  string    `bson:"userName"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// MongoStore keeps sessions in the sessions collection; the TTL index on
// expiresAt created by database.EnsureMongoIndexes removes stale ones.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(database.CollSessions)}
}

func (s *MongoStore) Save(ctx context.Context, sess domain.Session) error {
	doc := sessionDoc(sess)
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: sess.Token}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return domain.StoreError("save session", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, token string) (domain.Session, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: token}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, domain.StoreError("get session", err)
	}
	return domain.Session(doc), nil
}

func (s *MongoStore) Delete(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: token}}); err != nil {
		return domain.StoreError("delete session", err)
	}
	return nil
}
