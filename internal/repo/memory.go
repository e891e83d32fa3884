package repo

import (
	"context"
	"sync"

	"go-gin-shop/internal/domain"
	"go-gin-shop/pkg/utils"
)

// MemoryRepo keeps records in process. The name check and the insert happen
// under one lock, so it enforces uniqueness the same way a unique index does.
type MemoryRepo[T any, PT domain.EntityPtr[T]] struct {
	mu     sync.RWMutex
	entity string
	byID   map[string]T
	order  []string
}

func NewMemoryRepo[T any, PT domain.EntityPtr[T]](entity string) *MemoryRepo[T, PT] {
	return &MemoryRepo[T, PT]{entity: entity, byID: make(map[string]T)}
}

func NewMemoryUserRepo() *MemoryRepo[domain.User, *domain.User] {
	return NewMemoryRepo[domain.User]("user")
}

func NewMemoryCategoryRepo() *MemoryRepo[domain.Category, *domain.Category] {
	return NewMemoryRepo[domain.Category]("category")
}

func NewMemoryProductRepo() *MemoryRepo[domain.Product, *domain.Product] {
	return NewMemoryRepo[domain.Product]("product")
}

func (r *MemoryRepo[T, PT]) Create(_ context.Context, m *T) error {
	p := PT(m)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if PT(&existing).GetName() == p.GetName() {
			return &domain.DuplicateNameError{Entity: r.entity, Name: p.GetName()}
		}
	}
	if p.GetID() == "" {
		p.SetID(utils.NewID())
	}
	if _, ok := r.byID[p.GetID()]; ok {
		return domain.StoreError("create "+r.entity, errDuplicateID)
	}
	r.byID[p.GetID()] = *m
	r.order = append(r.order, p.GetID())
	return nil
}

func (r *MemoryRepo[T, PT]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *MemoryRepo[T, PT]) FindByID(_ context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryRepo[T, PT]) FindByName(_ context.Context, name string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		m := r.byID[id]
		if PT(&m).GetName() == name {
			return &m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepo[T, PT]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
