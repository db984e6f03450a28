package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Voucher struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MerchantID  uuid.UUID `gorm:"type:uuid;not null;index;column:merchant_id" json:"merchant_id"`
	Description string    `gorm:"column:description" json:"description"`
	Price       float64   `gorm:"not null;column:price" json:"price"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Voucher) TableName() string {
	return "voucher"
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// CartItem stages a voucher in a customer's cart. The composite unique
// index is what makes "already in cart" a keyed lookup.
type CartItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_customer_voucher;column:customer_id" json:"customer_id"`
	VoucherID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_customer_voucher;column:voucher_id" json:"voucher_id"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_item"
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// OwnedVoucher records a voucher a customer has purchased or been granted.
// Independent of the cart: the same voucher may appear in both sets.
type OwnedVoucher struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_owned_customer_voucher;column:customer_id" json:"customer_id"`
	VoucherID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_owned_customer_voucher;column:voucher_id" json:"voucher_id"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (OwnedVoucher) TableName() string {
	return "owned_voucher"
}

func (ov *OwnedVoucher) BeforeCreate(tx *gorm.DB) error {
	if ov.ID == uuid.Nil {
		ov.ID = uuid.New()
	}
	return nil
}
