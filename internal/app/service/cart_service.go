package service

import (
	"errors"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

type CartService interface {
	GetCart(userID uint) ([]model.CartItem, error)
	AddItem(userID, productID uint, quantity int, customization string) error
	UpdateQuantity(userID, productID uint, quantity int) error
	RemoveItem(userID, productID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(userID uint) ([]model.CartItem, error) {
	return s.cartRepo.FindByUserID(userID)
}

// AddItem puts a product in the cart. The stock check here is advisory;
// the authoritative check happens when the order is placed.
func (s *cartService) AddItem(userID, productID uint, quantity int, customization string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.Inventory < quantity {
		return &InsufficientInventoryError{
			ProductID: productID,
			Available: product.Inventory,
			Requested: quantity,
		}
	}

	item := &model.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      quantity,
		Customization: customization,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		logger.Error("Failed to add cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (s *cartService) UpdateQuantity(userID, productID uint, quantity int) error {
	if quantity <= 0 {
		// dropping to zero removes the line
		return s.RemoveItem(userID, productID)
	}

	err := s.cartRepo.UpdateQuantity(userID, productID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *cartService) RemoveItem(userID, productID uint) error {
	return s.cartRepo.Remove(userID, productID)
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.Clear(userID)
}
