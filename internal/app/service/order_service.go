package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNoItems      = errors.New("order has no items")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

const (
	placeOrderMaxAttempts = 3
	placeOrderBackoff     = 50 * time.Millisecond
)

type OrderService interface {
	PlaceOrder(order *model.Order) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID uint, orderID uint) (*model.Order, error)
	GetArtisanOrders(artisanID uint) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus, trackingNumber string) (*model.Order, error)
	UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
	}
}

// PlaceOrder persists an order and decrements stock for every line in one
// transaction. Each product row is locked before its stock is checked, so
// two concurrent orders for the last unit cannot both succeed. Any failed
// check aborts the whole order; no partial decrement survives.
//
// Transient storage conflicts (deadlocks, serialization failures) are
// retried a bounded number of times. Business failures never are.
func (s *orderService) PlaceOrder(order *model.Order) (*model.Order, error) {
	if len(order.Items) == 0 {
		return nil, ErrOrderNoItems
	}

	logger.Info("Placing order", map[string]interface{}{
		"user_id":    order.UserID,
		"item_count": len(order.Items),
		"total":      order.Total,
	})

	var lastErr error
	for attempt := 1; attempt <= placeOrderMaxAttempts; attempt++ {
		placed, err := s.placeOrderOnce(order)
		if err == nil {
			logger.Info("Order placed successfully", map[string]interface{}{
				"user_id":  placed.UserID,
				"order_id": placed.ID,
				"total":    placed.Total,
				"attempt":  attempt,
			})
			return placed, nil
		}
		if !isRetryableStoreError(err) {
			return nil, err
		}

		lastErr = err
		logger.Warn("Retrying order placement after storage conflict", map[string]interface{}{
			"user_id": order.UserID,
			"attempt": attempt,
			"error":   err.Error(),
		})
		time.Sleep(placeOrderBackoff * time.Duration(attempt))
	}

	logger.Error("Order placement failed after retries", lastErr, map[string]interface{}{
		"user_id":  order.UserID,
		"attempts": placeOrderMaxAttempts,
	})
	return nil, lastErr
}

func (s *orderService) placeOrderOnce(order *model.Order) (*model.Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order placement, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": order.UserID,
			})
		}
	}()

	// Read and check every line before writing anything.
	for i := range order.Items {
		item := &order.Items[i]

		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product missing during order placement", map[string]interface{}{
					"user_id":    order.UserID,
					"product_id": item.ProductID,
				})
				return nil, &ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, err
		}

		if product.Inventory < item.Quantity {
			tx.Rollback()
			logger.Warn("Order placement failed: insufficient inventory", map[string]interface{}{
				"user_id":    order.UserID,
				"product_id": item.ProductID,
				"requested":  item.Quantity,
				"available":  product.Inventory,
			})
			return nil, &InsufficientInventoryError{
				ProductID: item.ProductID,
				Available: product.Inventory,
				Requested: item.Quantity,
			}
		}

		if err := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("inventory", gorm.Expr("inventory - ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to decrement product inventory", err, map[string]interface{}{
				"user_id":    order.UserID,
				"product_id": product.ID,
			})
			return nil, err
		}
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// The order is committed at this point. A failed re-read must not
	// surface as a placement failure: the retry loop would re-enter with
	// an already-persisted order and decrement stock twice.
	placed, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		logger.Warn("Order committed but re-read failed", map[string]interface{}{
			"order_id": order.ID,
			"user_id":  order.UserID,
			"error":    err.Error(),
		})
		return order, nil
	}
	return placed, nil
}

// isRetryableStoreError matches driver-level concurrency conflicts that a
// fresh transaction may clear. Business errors are never retryable.
func isRetryableStoreError(err error) bool {
	var notFound *ProductNotFoundError
	var insufficient *InsufficientInventoryError
	if errors.As(err, &notFound) || errors.As(err, &insufficient) {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "serialization failure") ||
		strings.Contains(msg, "database is locked")
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID uint, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// owners see their own orders only
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetArtisanOrders lists orders containing at least one of the artisan's
// products, with other sellers' lines filtered out of each order.
func (s *orderService) GetArtisanOrders(artisanID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByArtisanID(artisanID)
	if err != nil {
		logger.Error("Failed to fetch artisan orders", err, map[string]interface{}{
			"artisan_id": artisanID,
		})
		return nil, err
	}

	for i := range orders {
		filtered := orders[i].Items[:0]
		for _, item := range orders[i].Items {
			if item.ArtisanID == artisanID {
				filtered = append(filtered, item)
			}
		}
		orders[i].Items = filtered
	}
	return orders, nil
}

// UpdateOrderStatus advances the order lifecycle. Moves that skip a stage
// or leave a terminal state are rejected. A tracking number may accompany
// the move to shipped.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus, trackingNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrInvalidTransition
	}

	order.Status = status
	if status == model.OrderStatusShipped && trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return order, nil
}

func (s *orderService) UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	order.PaymentStatus = status
	return s.orderRepo.Update(order)
}
