package model

import (
	"time"

	"gorm.io/gorm"
)

type WishlistItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_user_product_wish,unique" json:"user_id"`
	ProductID uint           `gorm:"not null;index:idx_user_product_wish,unique" json:"product_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
