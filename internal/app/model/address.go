package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a value object owned by a User. It is keyed by a stable UUID so
// that order documents can reference which saved address was snapshotted.
// Label is a pointer: an explicit null clears the label, a missing field
// leaves it untouched in partial updates.
type Address struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Street    string         `gorm:"type:text;not null" json:"street" validate:"required"`
	City      string         `gorm:"size:100;not null" json:"city" validate:"required"`
	State     string         `gorm:"size:100;not null" json:"state" validate:"required"`
	ZipCode   string         `gorm:"size:20;not null" json:"zip_code" validate:"required"`
	Country   string         `gorm:"size:100;not null" json:"country" validate:"required"`
	Label     *string        `gorm:"size:100" json:"label"` // e.g. "Home", "Work"; nullable
	Phone     string         `gorm:"size:30" json:"phone,omitempty"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Snapshot copies the address fields that get frozen onto an order at
// placement time. Later edits to the saved address never alter the copy.
func (a *Address) Snapshot() AddressSnapshot {
	label := ""
	if a.Label != nil {
		label = *a.Label
	}
	return AddressSnapshot{
		AddressID: a.ID,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Country:   a.Country,
		Label:     label,
		Phone:     a.Phone,
	}
}

// AddressSnapshot is embedded in Order with a column prefix.
type AddressSnapshot struct {
	AddressID string `gorm:"size:36" json:"address_id"`
	Street    string `gorm:"type:text" json:"street"`
	City      string `gorm:"size:100" json:"city"`
	State     string `gorm:"size:100" json:"state"`
	ZipCode   string `gorm:"size:20" json:"zip_code"`
	Country   string `gorm:"size:100" json:"country"`
	Label     string `gorm:"size:100" json:"label,omitempty"`
	Phone     string `gorm:"size:30" json:"phone,omitempty"`
}
