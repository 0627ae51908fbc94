package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type EmailController struct {
	notificationService service.NotificationService
}

func NewEmailController(notificationService service.NotificationService) *EmailController {
	return &EmailController{notificationService: notificationService}
}

// SendOrderEmails triggers order confirmation mail for an already placed
// order. The endpoint accepts the payload, answers immediately, and
// delivers in the background; callers are not meant to wait on SMTP.
// POST /api/send-order-emails
func (ctrl *EmailController) SendOrderEmails(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.OrderEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order email payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid email payload")
		return
	}

	go func() {
		if err := ctrl.notificationService.SendOrderEmailsFromRequest(req); err != nil {
			log.Error("Order email delivery failed", err, map[string]interface{}{
				"order_id": req.OrderID,
			})
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "Order emails queued"})
}
