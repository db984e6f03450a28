package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	EmissionPerGram float64   `gorm:"not null;column:emission_per_gram" json:"emission_per_gram"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (Ingredient) TableName() string {
	return "ingredient"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ProductIngredient joins a product to an ingredient with the serving
// quantity in grams. At most one row per (product, ingredient) pair.
type ProductIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient;column:product_id" json:"product_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient;column:ingredient_id" json:"ingredient_id"`
	ServingQty   float64   `gorm:"not null;column:serving_qty" json:"serving_qty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductIngredient) TableName() string {
	return "product_ingredient"
}

func (pi *ProductIngredient) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}
