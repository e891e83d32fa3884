package repo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-gin-shop/internal/domain"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func newUserDoc(u *domain.User) (userDoc, error) {
	return userDoc{ID: u.ID, Name: u.Name, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}, nil
}

func (d userDoc) toDomain() (domain.User, error) {
	return domain.User{ID: d.ID, Name: d.Name, PasswordHash: d.PasswordHash, CreatedAt: d.CreatedAt}, nil
}

type categoryDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func newCategoryDoc(c *domain.Category) (categoryDoc, error) {
	return categoryDoc{ID: c.ID, Name: c.Name}, nil
}

func (d categoryDoc) toDomain() (domain.Category, error) {
	return domain.Category{ID: d.ID, Name: d.Name}, nil
}

// productDoc stores money as Decimal128 so mongo keeps exact values.
type productDoc struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Category    string               `bson:"category"`
	Price       primitive.Decimal128 `bson:"price"`
	SalePrice   primitive.Decimal128 `bson:"saleprice"`
	Img         string               `bson:"img"`
	Inventory   int                  `bson:"inventory"`
}

func newProductDoc(p *domain.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, fmt.Errorf("price: %w", err)
	}
	sale, err := primitive.ParseDecimal128(p.SalePrice.String())
	if err != nil {
		return productDoc{}, fmt.Errorf("saleprice: %w", err)
	}
	return productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       price,
		SalePrice:   sale,
		Img:         p.Img,
		Inventory:   p.Inventory,
	}, nil
}

func (d productDoc) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}
	sale, err := decimal.NewFromString(d.SalePrice.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("saleprice: %w", err)
	}
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       price,
		SalePrice:   sale,
		Img:         d.Img,
		Inventory:   d.Inventory,
	}, nil
}
