package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

type CheckoutRequest struct {
	AddressID      string `json:"address_id" binding:"required"`
	DeliveryOption string `json:"delivery_option" binding:"omitempty,oneof=standard express sos"`
	Notes          string `json:"notes"`
}

// Checkout places an order from the current cart
// POST /api/v1/checkout
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout payload", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid checkout data")
		return
	}

	order, err := ctrl.checkoutService.Checkout(service.CheckoutInput{
		UserID:         userID,
		AddressID:      req.AddressID,
		DeliveryOption: model.DeliveryOption(req.DeliveryOption),
		Notes:          req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// Quote previews totals for the current cart
// GET /api/v1/checkout/quote
func (ctrl *CheckoutController) Quote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	option := model.DeliveryOption(c.DefaultQuery("delivery_option", "standard"))
	quote, err := ctrl.checkoutService.Quote(userID, option)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote})
}
