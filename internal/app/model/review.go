package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index:idx_product_user_review,unique" json:"product_id" validate:"required"`
	UserID    uint           `gorm:"not null;index:idx_product_user_review,unique" json:"user_id" validate:"required"`
	UserName  string         `gorm:"not null" json:"user_name" validate:"required"`
	Rating    int            `gorm:"not null" json:"rating" validate:"required,min=1,max=5"`
	Comment   string         `gorm:"type:text;not null" json:"comment" validate:"required"`
	Images    pq.StringArray `gorm:"type:text[]" json:"images,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// At most one response, written by the product's owning artisan.
	ArtisanResponse    *string    `gorm:"type:text" json:"artisan_response,omitempty"`
	ArtisanRespondedAt *time.Time `json:"artisan_responded_at,omitempty"`

	Product Product `gorm:"foreignKey:ProductID" json:"-" validate:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-" validate:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
