package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"go-gin-shop/internal/core/database"
	"go-gin-shop/internal/domain"
	"go-gin-shop/pkg/utils"
)

// MongoRepo is a NamedRepository over one collection. T is the domain type,
// D its bson document shape.
type MongoRepo[T any, PT domain.EntityPtr[T], D any] struct {
	coll    *mongo.Collection
	entity  string
	toDoc   func(*T) (D, error)
	fromDoc func(D) (T, error)
}

func NewMongoUserRepo(db *mongo.Database) *MongoRepo[domain.User, *domain.User, userDoc] {
	return &MongoRepo[domain.User, *domain.User, userDoc]{
		coll:    db.Collection(database.CollUsers),
		entity:  "user",
		toDoc:   newUserDoc,
		fromDoc: userDoc.toDomain,
	}
}

func NewMongoCategoryRepo(db *mongo.Database) *MongoRepo[domain.Category, *domain.Category, categoryDoc] {
	return &MongoRepo[domain.Category, *domain.Category, categoryDoc]{
		coll:    db.Collection(database.CollCategories),
		entity:  "category",
		toDoc:   newCategoryDoc,
		fromDoc: categoryDoc.toDomain,
	}
}

func NewMongoProductRepo(db *mongo.Database) *MongoRepo[domain.Product, *domain.Product, productDoc] {
	return &MongoRepo[domain.Product, *domain.Product, productDoc]{
		coll:    db.Collection(database.CollProducts),
		entity:  "product",
		toDoc:   newProductDoc,
		fromDoc: productDoc.toDomain,
	}
}

func (r *MongoRepo[T, PT, D]) Create(ctx context.Context, m *T) error {
	p := PT(m)
	if p.GetID() == "" {
		p.SetID(utils.NewID())
	}
	doc, err := r.toDoc(m)
	if err != nil {
		return domain.InvalidInput(err.Error())
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.DuplicateNameError{Entity: r.entity, Name: p.GetName()}
		}
		return domain.StoreError("insert "+r.entity, err)
	}
	return nil
}

func (r *MongoRepo[T, PT, D]) List(ctx context.Context) ([]T, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, domain.StoreError("find "+r.entity, err)
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.StoreError("decode "+r.entity, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		m, err := r.fromDoc(d)
		if err != nil {
			return nil, domain.StoreError("decode "+r.entity, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MongoRepo[T, PT, D]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *MongoRepo[T, PT, D]) FindByName(ctx context.Context, name string) (*T, error) {
	return r.findOne(ctx, bson.D{{Key: "name", Value: name}})
}

func (r *MongoRepo[T, PT, D]) findOne(ctx context.Context, filter bson.D) (*T, error) {
	var d D
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreError("find "+r.entity, err)
	}
	m, err := r.fromDoc(d)
	if err != nil {
		return nil, domain.StoreError("decode "+r.entity, err)
	}
	return &m, nil
}

func (r *MongoRepo[T, PT, D]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return domain.StoreError("delete "+r.entity, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
