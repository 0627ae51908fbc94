package service

import (
	"errors"
	"fmt"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryOp names the direction of a stock adjustment.
type InventoryOp string

const (
	InventoryAdd      InventoryOp = "add"
	InventorySubtract InventoryOp = "subtract"
)

var (
	ErrInvalidInventoryOp  = errors.New("invalid inventory operation")
	ErrInvalidInventoryQty = errors.New("inventory quantity must be positive")
)

// InsufficientInventoryError reports a stock check failure for one product.
type InsufficientInventoryError struct {
	ProductID uint
	Available int
	Requested int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// ProductNotFoundError reports a missing product referenced by an order line.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type InventoryService interface {
	Adjust(productID uint, quantity int, op InventoryOp) (*model.Product, error)
}

type inventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) InventoryService {
	return &inventoryService{db: db}
}

// Adjust moves stock for a single product under a row lock. Subtracting
// below zero fails the whole operation and leaves the count untouched.
func (s *inventoryService) Adjust(productID uint, quantity int, op InventoryOp) (*model.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidInventoryQty
	}
	if op != InventoryAdd && op != InventorySubtract {
		return nil, ErrInvalidInventoryOp
	}

	logger.Debug("Adjusting product inventory", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
		"op":         op,
	})

	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: productID}
			}
			return err
		}

		delta := quantity
		if op == InventorySubtract {
			if product.Inventory < quantity {
				return &InsufficientInventoryError{
					ProductID: productID,
					Available: product.Inventory,
					Requested: quantity,
				}
			}
			delta = -quantity
		}

		if err := tx.Model(&model.Product{}).
			Where("id = ?", productID).
			Update("inventory", gorm.Expr("inventory + ?", delta)).Error; err != nil {
			return err
		}

		product.Inventory += delta
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Product inventory adjusted", map[string]interface{}{
		"product_id": productID,
		"op":         op,
		"quantity":   quantity,
		"inventory":  product.Inventory,
	})
	return &product, nil
}
