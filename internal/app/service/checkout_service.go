package service

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/craftnest/craftnest-backend/config"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrAddressNotFound       = errors.New("address not found")
	ErrInvalidDeliveryOption = errors.New("invalid delivery option")
)

// CheckoutInput is everything the customer chooses at the checkout page.
type CheckoutInput struct {
	UserID         uint
	AddressID      string
	DeliveryOption model.DeliveryOption
	Notes          string
}

type CheckoutService interface {
	Checkout(input CheckoutInput) (*model.Order, error)
	Quote(userID uint, option model.DeliveryOption) (*CheckoutQuote, error)
}

// CheckoutQuote previews the order totals without placing anything.
type CheckoutQuote struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
	ItemCount    int     `json:"item_count"`
}

type checkoutService struct {
	orderService OrderService
	notifier     NotificationService
	userRepo     repository.UserRepository
	cartRepo     repository.CartRepository
	addressRepo  repository.AddressRepository
	pricing      config.CheckoutConfig
}

func NewCheckoutService(
	orderService OrderService,
	notifier NotificationService,
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	pricing config.CheckoutConfig,
) CheckoutService {
	return &checkoutService{
		orderService: orderService,
		notifier:     notifier,
		userRepo:     userRepo,
		cartRepo:     cartRepo,
		addressRepo:  addressRepo,
		pricing:      pricing,
	}
}

// Checkout turns the customer's cart into a placed order. Pricing is
// computed server-side from current product data, the shipping address is
// frozen into the order, and the cart is cleared only after the order has
// committed. Confirmation emails go out in the background; a mail failure
// never fails the checkout.
func (s *checkoutService) Checkout(input CheckoutInput) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id":         input.UserID,
		"address_id":      input.AddressID,
		"delivery_option": input.DeliveryOption,
	})

	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	option := input.DeliveryOption
	if option == "" {
		option = model.DeliveryStandard
	}
	if option != model.DeliveryStandard && option != model.DeliveryExpress && option != model.DeliverySOS {
		return nil, ErrInvalidDeliveryOption
	}

	address, err := s.addressRepo.FindByID(input.AddressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != input.UserID {
		return nil, ErrAddressNotFound
	}

	cartItems, err := s.cartRepo.FindByUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Checkout attempted with empty cart", map[string]interface{}{
			"user_id": input.UserID,
		})
		return nil, ErrEmptyCart
	}

	items, subtotal := s.buildOrderItems(input.UserID, cartItems)
	shipping := s.shippingCost(option, subtotal)
	tax := roundCents(subtotal * s.pricing.TaxRate)

	order := &model.Order{
		UserID:          input.UserID,
		Subtotal:        roundCents(subtotal),
		ShippingMethod:  option,
		ShippingCost:    shipping,
		Tax:             tax,
		Total:           roundCents(subtotal + shipping + tax),
		Status:          model.OrderStatusPending,
		PaymentMethod:   model.PaymentMethodCOD,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: address.Snapshot(),
		Notes:           input.Notes,
		Items:           items,
	}

	placed, err := s.orderService.PlaceOrder(order)
	if err != nil {
		return nil, err
	}

	// The order is committed; a cart that fails to clear is an annoyance,
	// not a reason to undo the sale.
	if err := s.cartRepo.Clear(input.UserID); err != nil {
		logger.Error("Failed to clear cart after checkout", err, map[string]interface{}{
			"user_id":  input.UserID,
			"order_id": placed.ID,
		})
	}

	if s.notifier != nil {
		go s.notifier.SendOrderEmails(placed, user)
	}

	return placed, nil
}

// Quote previews totals for the current cart without touching stock.
func (s *checkoutService) Quote(userID uint, option model.DeliveryOption) (*CheckoutQuote, error) {
	if option == "" {
		option = model.DeliveryStandard
	}
	if option != model.DeliveryStandard && option != model.DeliveryExpress && option != model.DeliverySOS {
		return nil, ErrInvalidDeliveryOption
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	_, subtotal := s.buildOrderItems(userID, cartItems)
	shipping := s.shippingCost(option, subtotal)
	tax := roundCents(subtotal * s.pricing.TaxRate)

	count := 0
	for _, item := range cartItems {
		count += item.Quantity
	}

	return &CheckoutQuote{
		Subtotal:     roundCents(subtotal),
		ShippingCost: shipping,
		Tax:          tax,
		Total:        roundCents(subtotal + shipping + tax),
		ItemCount:    count,
	}, nil
}

// buildOrderItems freezes the cart into order line snapshots priced at the
// product's current effective price. Customization text must be valid JSON
// to survive into the snapshot; anything else is dropped with a warning,
// never a failure.
func (s *checkoutService) buildOrderItems(userID uint, cartItems []model.CartItem) ([]model.OrderItem, float64) {
	var (
		items    []model.OrderItem
		subtotal float64
	)

	for _, cartItem := range cartItems {
		product := cartItem.Product
		unitPrice := product.EffectivePrice()

		customizations := ""
		if cartItem.Customization != "" {
			if json.Valid([]byte(cartItem.Customization)) {
				customizations = cartItem.Customization
			} else {
				logger.Warn("Dropping malformed customization data", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
			}
		}

		lineTotal := unitPrice * float64(cartItem.Quantity)
		items = append(items, model.OrderItem{
			ProductID:      cartItem.ProductID,
			ProductName:    product.Name,
			Quantity:       cartItem.Quantity,
			UnitPrice:      unitPrice,
			TotalPrice:     roundCents(lineTotal),
			Currency:       product.Currency,
			ImageURL:       product.MainImage(),
			ArtisanID:      product.ArtisanID,
			Customizations: customizations,
		})
		subtotal += lineTotal
	}

	return items, subtotal
}

// shippingCost applies the delivery tariff. Standard shipping is tiered on
// the subtotal; express and same-day are flat.
func (s *checkoutService) shippingCost(option model.DeliveryOption, subtotal float64) float64 {
	switch option {
	case model.DeliveryExpress:
		return s.pricing.ExpressShippingCost
	case model.DeliverySOS:
		return s.pricing.SOSShippingCost
	default:
		if subtotal >= s.pricing.FreeShippingThreshold {
			return 0
		}
		if subtotal >= s.pricing.ReducedShippingAbove {
			return s.pricing.ReducedShippingCost
		}
		return s.pricing.BaseShippingCost
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
