package model

import "github.com/shopspring/decimal"

// Cafeteria order lifecycle. PENDING advances linearly to DELIVERED;
// CANCELLED is reachable from PENDING only.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Point-of-sale payment methods.
const (
	PaymentMethodCash  = "CASH"
	PaymentMethodCard  = "CARD"
	PaymentMethodSumUp = "SUMUP"
)

// NextOrderStatus returns the single legal successor of a status on the
// delivery path, or "" when the status is terminal.
func NextOrderStatus(status string) string {
	switch status {
	case OrderStatusPending:
		return OrderStatusConfirmed
	case OrderStatusConfirmed:
		return OrderStatusPreparing
	case OrderStatusPreparing:
		return OrderStatusReady
	case OrderStatusReady:
		return OrderStatusDelivered
	default:
		return ""
	}
}

// CafeteriaOrder maps to the cafeteria_orders table. The stored total is
// the sum of item price×quantity snapshotted at creation time.
type CafeteriaOrder struct {
	ID            string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        string          `gorm:"type:uuid;not null"                             json:"user_id"`
	Total         decimal.Decimal `gorm:"type:numeric(10,2);not null"                    json:"total"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	Notes         *string         `gorm:"type:text"                                      json:"notes,omitempty"`
	PaymentMethod *string         `gorm:"type:varchar(20)"                               json:"payment_method,omitempty"`
	CustomerName  *string         `gorm:"type:varchar(100)"                              json:"customer_name,omitempty"`
	BaseModel

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (CafeteriaOrder) TableName() string { return "cafeteria_orders" }

// OrderItem maps to the order_items table. Price is the unit price at the
// moment the order was placed, not the current product price.
type OrderItem struct {
	ID        string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID   string          `gorm:"type:uuid;not null"                             json:"order_id"`
	ProductID string          `gorm:"type:uuid;not null"                             json:"product_id"`
	Quantity  int             `gorm:"not null"                                       json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"                    json:"price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string { return "order_items" }
