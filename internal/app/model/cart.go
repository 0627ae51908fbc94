package model

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID        uint `gorm:"primarykey" json:"id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity" validate:"required,gt=0"`

	// Free-text customization entered by the customer. Parsed as JSON at
	// checkout; kept verbatim here.
	Customization string         `gorm:"type:text" json:"customization,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User    User    `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
