package domain

// Category groups products by name. Products refer to it by name only.
type Category struct {
	ID   string `gorm:"primaryKey;size:36" json:"_id"`
	Name string `gorm:"uniqueIndex;size:191;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }

func (c Category) GetID() string     { return c.ID }
func (c *Category) SetID(id string)  { c.ID = id }
func (c Category) GetName() string   { return c.Name }
func (c *Category) SetName(n string) { c.Name = n }

type CategoryRepository = NamedRepository[Category]
