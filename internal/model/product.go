package model

import "github.com/shopspring/decimal"

// ProductCategory maps to the product_categories table.
type ProductCategory struct {
	ID           string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Description  *string `gorm:"type:text"                                      json:"description,omitempty"`
	Image        *string `gorm:"type:text"                                      json:"image,omitempty"`
	DisplayOrder int     `gorm:"column:display_order;not null;default:0"        json:"display_order"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName sets the table name.
func (ProductCategory) TableName() string { return "product_categories" }

// Product maps to the products table. Stock is floored at zero by a DB
// CHECK constraint; all decrements go through the conditional update in
// the repository.
type Product struct {
	ID           string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CategoryID   *string          `gorm:"type:uuid"                                      json:"category_id,omitempty"`
	Name         string           `gorm:"type:varchar(100);not null"                     json:"name"`
	Description  *string          `gorm:"type:text"                                      json:"description,omitempty"`
	Image        *string          `gorm:"type:text"                                      json:"image,omitempty"`
	Price        decimal.Decimal  `gorm:"type:numeric(10,2);not null"                    json:"price"`
	CostPrice    *decimal.Decimal `gorm:"type:numeric(10,2)"                             json:"cost_price,omitempty"`
	Stock        int              `gorm:"not null;default:0"                             json:"stock"`
	DisplayOrder int              `gorm:"column:display_order;not null;default:0"        json:"display_order"`
	IsAvailable  bool             `gorm:"not null;default:true"                          json:"is_available"`
	IsActive     bool             `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Category *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string { return "products" }
