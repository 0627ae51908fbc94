package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type UpdateOrderStatusRequest struct {
	Status         model.OrderStatus `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
	TrackingNumber string            `json:"tracking_number"`
}

type UpdatePaymentStatusRequest struct {
	Status model.PaymentStatus `json:"status" binding:"required,oneof=pending paid failed"`
}

// GetOrders returns the user's order history
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, id)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetArtisanOrders lists orders containing the artisan's products
// GET /api/v1/orders/artisan
func (ctrl *OrderController) GetArtisanOrders(c *gin.Context) {
	artisanID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetArtisanOrders(artisanID)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateStatus advances the order lifecycle
// PATCH /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid status payload", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid order status")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(id, req.Status, req.TrackingNumber)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdatePaymentStatus records a payment outcome
// PATCH /api/v1/orders/:id/payment
func (ctrl *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid payment status")
		return
	}

	if err := ctrl.orderService.UpdatePaymentStatus(id, req.Status); err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
}
