package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MerchantID     uuid.UUID `gorm:"type:uuid;not null;index;column:merchant_id" json:"merchant_id"`
	Name           string    `gorm:"not null;column:name" json:"name"`
	Price          float64   `gorm:"not null;column:price" json:"price"`
	CarbonEmission float64   `gorm:"not null;default:0;column:carbon_emission" json:"carbon_emission"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
