package domain

import "github.com/shopspring/decimal"

// Product is a catalog item. Category holds a category name and is not
// checked against the categories collection.
type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"_id"`
	Name        string          `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:191;index" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"saleprice"`
	Img         string          `gorm:"size:512" json:"img"`
	Inventory   int             `gorm:"not null" json:"inventory"`
}

func (Product) TableName() string { return "products" }

func (p Product) GetID() string     { return p.ID }
func (p *Product) SetID(id string)  { p.ID = id }
func (p Product) GetName() string   { return p.Name }
func (p *Product) SetName(n string) { p.Name = n }

type ProductRepository = NamedRepository[Product]

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
