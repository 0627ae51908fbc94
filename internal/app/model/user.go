package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleArtisan  UserRole = "artisan"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	DisplayName  string         `gorm:"not null" json:"display_name" validate:"required"`
	Phone        string         `gorm:"index" json:"phone,omitempty"`
	PhotoURL     string         `json:"photo_url,omitempty"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role" validate:"required,oneof=customer artisan admin"`
	Bio          string         `gorm:"type:text" json:"bio,omitempty"`
	CompanyName  string         `json:"company_name,omitempty"` // artisans only
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Artisan settings. Zero values are sensible defaults for customers.
	PayoutSchedule       string `gorm:"type:varchar(20);default:'monthly'" json:"payout_schedule,omitempty"`
	AutomaticPayout      bool   `gorm:"default:true" json:"automatic_payout,omitempty"`
	ShippingFrom         string `json:"shipping_from,omitempty"`
	ShippingStandard     bool   `gorm:"default:true" json:"shipping_standard,omitempty"`
	ShippingExpress      bool   `gorm:"default:false" json:"shipping_express,omitempty"`
	NotifyNewOrder       bool   `gorm:"default:true" json:"notify_new_order,omitempty"`
	NotifyOrderShipped   bool   `gorm:"default:true" json:"notify_order_shipped,omitempty"`
	NotifyPaymentReceive bool   `gorm:"default:true" json:"notify_payment_received,omitempty"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty" validate:"-"`
}

func (User) TableName() string {
	return "users"
}

// DefaultAddress returns the user's default address, or nil when none is set.
func (u *User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}
