package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the record of one completed purchase. Created atomically by
// the purchase transaction and immutable afterwards.
type Order struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index;column:customer_id" json:"customer_id"`
	TotalPrice float64     `gorm:"not null;column:total_price" json:"total_price"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index;column:order_id" json:"order_id"`
	VoucherID uuid.UUID `gorm:"type:uuid;not null;column:voucher_id" json:"voucher_id"`
	Price     float64   `gorm:"not null;column:price" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_item"
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}
