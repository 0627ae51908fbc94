package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"not null" json:"name" validate:"required"`
	Description     string         `gorm:"type:text;not null" json:"description" validate:"required"`
	Price           float64        `gorm:"not null" json:"price" validate:"required,gt=0"`
	DiscountedPrice *float64       `json:"discounted_price,omitempty" validate:"omitempty,gt=0"`
	Currency        string         `gorm:"size:10;default:'USD'" json:"currency" validate:"required"`
	Images          pq.StringArray `gorm:"type:text[]" json:"images" validate:"min=1"`
	Category        string         `gorm:"size:100;index;not null" json:"category" validate:"required"`
	Subcategory     string         `gorm:"size:100" json:"subcategory,omitempty"`
	ArtisanID       uint           `gorm:"not null;index" json:"artisan_id" validate:"required"`
	Inventory       int            `gorm:"not null;default:0" json:"inventory" validate:"min=0"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	Materials       pq.StringArray `gorm:"type:text[]" json:"materials,omitempty"`
	Occasion        string         `gorm:"size:100" json:"occasion,omitempty"`
	IsCustomizable  bool           `gorm:"default:false" json:"is_customizable"`
	AverageRating   float64        `gorm:"default:0" json:"average_rating"`
	TotalReviews    int            `gorm:"default:0" json:"total_reviews"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Artisan    *User       `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty" validate:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-" validate:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-" validate:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the discounted price when present, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice > 0 {
		return *p.DiscountedPrice
	}
	return p.Price
}

// MainImage returns the first image URL or an empty string.
func (p *Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
