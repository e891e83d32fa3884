package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollUsers      = "users"
	CollCategories = "categories"
	CollProducts   = "products"
	CollSessions   = "sessions"
)

type MongoOpts struct {
	URI            string
	Database       string
	Username       string
	Password       string
	ConnectTimeout time.Duration
}

// NewMongo connects and pings the primary so a bad URI fails at startup.
func NewMongo(ctx context.Context, o MongoOpts) (*mongo.Client, *mongo.Database, error) {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 10 * time.Second
	}
	opts := options.Client().
		ApplyURI(o.URI).
		SetConnectTimeout(o.ConnectTimeout).
		SetServerSelectionTimeout(o.ConnectTimeout)
	if o.Username != "" {
		opts.SetAuth(options.Credential{Username: o.Username, Password: o.Password})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, o.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(o.Database), nil
}

// EnsureMongoIndexes creates the unique name indexes and the TTL index that
// lets mongo drop expired sessions on its own.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	for _, coll := range []string{CollUsers, CollCategories, CollProducts} {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("create %s name index: %w", coll, err)
		}
	}
	_, err := db.Collection(CollSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create sessions ttl index: %w", err)
	}
	return nil
}
