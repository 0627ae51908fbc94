package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string
type DeliveryOption string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"

	// Cash on delivery is the only supported method.
	PaymentMethodCOD PaymentMethod = "cod"

	DeliveryStandard DeliveryOption = "standard"
	DeliveryExpress  DeliveryOption = "express"
	DeliverySOS      DeliveryOption = "sos" // same-day courier, select areas
)

// orderTransitions holds the legal forward moves of the order lifecycle.
// Cancellation is allowed from any non-terminal state and is itself terminal.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// CanTransitionTo reports whether an order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderTransitions[s] == next
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Order struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id" validate:"required"`
	Subtotal        float64         `gorm:"not null" json:"subtotal" validate:"gt=0"`
	ShippingMethod  DeliveryOption  `gorm:"type:varchar(20);default:'standard'" json:"shipping_method"`
	ShippingCost    float64         `gorm:"not null" json:"shipping_cost" validate:"min=0"`
	Tax             float64         `gorm:"not null" json:"tax" validate:"min=0"`
	Discount        float64         `gorm:"default:0" json:"discount" validate:"min=0"`
	Total           float64         `gorm:"not null" json:"total" validate:"gt=0"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20);default:'cod'" json:"payment_method"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	ShippingAddress AddressSnapshot `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	TrackingNumber  string          `gorm:"size:100" json:"tracking_number,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty" validate:"min=1,dive"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a frozen snapshot of one cart line at placement time.
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderID        uint           `gorm:"not null;index" json:"order_id"`
	ProductID      uint           `gorm:"not null;index" json:"product_id" validate:"required"`
	ProductName    string         `gorm:"not null" json:"product_name" validate:"required"`
	Quantity       int            `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice      float64        `gorm:"not null" json:"unit_price" validate:"required,gt=0"`
	TotalPrice     float64        `gorm:"not null" json:"total_price" validate:"required,gt=0"`
	Currency       string         `gorm:"size:10" json:"currency"`
	ImageURL       string         `json:"image_url,omitempty"`
	ArtisanID      uint           `gorm:"not null;index" json:"artisan_id" validate:"required"`
	Customizations string         `gorm:"type:text" json:"customizations,omitempty"` // JSON snapshot
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-" validate:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
