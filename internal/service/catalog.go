package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"go-gin-shop/internal/domain"
)

// Catalog is the create/read/delete flow shared by categories and products.
type Catalog[T any, PT domain.EntityPtr[T]] struct {
	repo     domain.NamedRepository[T]
	entity   string
	validate func(*T) error
}

type (
	CategoryService = Catalog[domain.Category, *domain.Category]
	ProductService  = Catalog[domain.Product, *domain.Product]
)

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, entity: "category"}
}

func NewProductService(repo domain.ProductRepository) *ProductService {
	return &ProductService{repo: repo, entity: "product", validate: validateProduct}
}

// Create inserts m after a name lookup. The lookup only produces the error
// early; the store's unique index decides races.
func (c *Catalog[T, PT]) Create(ctx context.Context, m *T) error {
	p := PT(m)
	p.SetName(strings.TrimSpace(p.GetName()))
	if p.GetName() == "" {
		return domain.InvalidInput(c.entity + " name is required")
	}
	if c.validate != nil {
		if err := c.validate(m); err != nil {
			return err
		}
	}

	_, err := c.repo.FindByName(ctx, p.GetName())
	switch {
	case err == nil:
		return &domain.DuplicateNameError{Entity: c.entity, Name: p.GetName()}
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return c.repo.Create(ctx, m)
}

func (c *Catalog[T, PT]) List(ctx context.Context) ([]T, error) { return c.repo.List(ctx) }

func (c *Catalog[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return c.repo.FindByID(ctx, id)
}

func (c *Catalog[T, PT]) GetByName(ctx context.Context, name string) (*T, error) {
	if name == "" {
		return nil, domain.ErrNotFound
	}
	return c.repo.FindByName(ctx, name)
}

func (c *Catalog[T, PT]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrNotFound
	}
	return c.repo.Delete(ctx, id)
}

// Seed creates the items whose names are not taken yet and reports how many
// were inserted.
func (c *Catalog[T, PT]) Seed(ctx context.Context, items []T) (int, error) {
	n := 0
	for i := range items {
		err := c.Create(ctx, &items[i])
		if errors.Is(err, domain.ErrDuplicateName) {
			continue
		}
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Prices are stored as decimal(10,2) in the relational backends.
var maxPrice = decimal.New(1, 8)

func validateProduct(p *domain.Product) error {
	if err := validatePrice("price", p.Price); err != nil {
		return err
	}
	if err := validatePrice("saleprice", p.SalePrice); err != nil {
		return err
	}
	if p.Inventory < 0 {
		return domain.InvalidInput("inventory must not be negative")
	}
	return nil
}

func validatePrice(field string, d decimal.Decimal) error {
	switch {
	case d.IsNegative():
		return domain.InvalidInput(field + " must not be negative")
	case d.GreaterThanOrEqual(maxPrice):
		return domain.InvalidInput(field + " must be less than 100000000")
	case !d.Equal(d.Round(2)):
		return domain.InvalidInput(field + " must have at most 2 decimal places")
	}
	return nil
}
