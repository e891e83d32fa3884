package domain

import "context"

// Entity is a persisted record with a unique name.
type Entity interface {
	GetID() string
	SetID(id string)
	GetName() string
	SetName(name string)
}

// NamedRepository is CRUD over one collection whose names are unique.
// Create returns a DuplicateNameError when the name is taken, lookups and
// Delete return ErrNotFound, any other failure wraps ErrStoreUnavailable.
type NamedRepository[T any] interface {
	Create(ctx context.Context, m *T) error
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindByName(ctx context.Context, name string) (*T, error)
	Delete(ctx context.Context, id string) error
}

// EntityPtr lets generic code hold a T and call the pointer methods of Entity on it.
type EntityPtr[T any] interface {
	*T
	Entity
}
