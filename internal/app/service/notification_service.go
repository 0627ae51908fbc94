package service

import (
	"fmt"
	"strings"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"github.com/craftnest/craftnest-backend/pkg/mailer"
)

// OrderEmailRequest is the payload accepted by the email endpoint. It
// mirrors what the checkout flow sends internally so external callers can
// re-trigger the same mails.
type OrderEmailRequest struct {
	OrderID       uint             `json:"order_id" binding:"required"`
	CustomerName  string           `json:"customer_name" binding:"required"`
	CustomerEmail string           `json:"customer_email" binding:"required,email"`
	OrderTotal    float64          `json:"order_total" binding:"required"`
	Items         []OrderEmailItem `json:"items" binding:"required,min=1"`
}

type OrderEmailItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ArtisanID   uint    `json:"artisan_id"`
}

type NotificationService interface {
	SendOrderEmails(order *model.Order, customer *model.User)
	SendOrderEmailsFromRequest(req OrderEmailRequest) error
}

type notificationService struct {
	mailer   mailer.Mailer
	userRepo repository.UserRepository
}

func NewNotificationService(m mailer.Mailer, userRepo repository.UserRepository) NotificationService {
	return &notificationService{
		mailer:   m,
		userRepo: userRepo,
	}
}

// SendOrderEmails delivers the order confirmation to the customer and a
// new-order notice to every artisan with a line in the order. Failures are
// logged and swallowed; mail never blocks or fails an order.
func (s *notificationService) SendOrderEmails(order *model.Order, customer *model.User) {
	req := OrderEmailRequest{
		OrderID:       order.ID,
		CustomerName:  customer.DisplayName,
		CustomerEmail: customer.Email,
		OrderTotal:    order.Total,
	}
	for _, item := range order.Items {
		req.Items = append(req.Items, OrderEmailItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
			ArtisanID:   item.ArtisanID,
		})
	}

	if err := s.SendOrderEmailsFromRequest(req); err != nil {
		logger.Error("Failed to send order emails", err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
}

func (s *notificationService) SendOrderEmailsFromRequest(req OrderEmailRequest) error {
	subject := fmt.Sprintf("Your CraftNest order #%d", req.OrderID)
	if err := s.mailer.Send(req.CustomerEmail, subject, customerOrderBody(req)); err != nil {
		return fmt.Errorf("customer email: %w", err)
	}

	// One notice per artisan, covering only their lines.
	byArtisan := make(map[uint][]OrderEmailItem)
	for _, item := range req.Items {
		byArtisan[item.ArtisanID] = append(byArtisan[item.ArtisanID], item)
	}

	var firstErr error
	for artisanID, items := range byArtisan {
		artisan, err := s.userRepo.FindByID(artisanID)
		if err != nil {
			logger.Warn("Artisan lookup failed for order email", map[string]interface{}{
				"artisan_id": artisanID,
				"order_id":   req.OrderID,
			})
			continue
		}
		if !artisan.NotifyNewOrder {
			continue
		}

		subject := fmt.Sprintf("New order #%d on CraftNest", req.OrderID)
		if err := s.mailer.Send(artisan.Email, subject, artisanOrderBody(req, artisan.DisplayName, items)); err != nil {
			logger.Error("Failed to send artisan order email", err, map[string]interface{}{
				"artisan_id": artisanID,
				"order_id":   req.OrderID,
			})
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func customerOrderBody(req OrderEmailRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<h2>Thank you for your order, %s!</h2>`, req.CustomerName)
	fmt.Fprintf(&b, `<p>Your order <strong>#%d</strong> has been received and is being prepared by our artisans.</p>`, req.OrderID)
	b.WriteString(`<table border="0" cellpadding="6"><tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th></tr>`)
	for _, item := range req.Items {
		fmt.Fprintf(&b, `<tr><td>%s</td><td align="center">%d</td><td align="right">$%.2f</td></tr>`,
			item.ProductName, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, `</table><p><strong>Total: $%.2f</strong> (cash on delivery)</p>`, req.OrderTotal)
	b.WriteString(`<p>We will email you again when your order ships.</p>`)
	return b.String()
}

func artisanOrderBody(req OrderEmailRequest, artisanName string, items []OrderEmailItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<h2>You have a new order, %s!</h2>`, artisanName)
	fmt.Fprintf(&b, `<p>Order <strong>#%d</strong> includes the following items from your shop:</p><ul>`, req.OrderID)
	for _, item := range items {
		fmt.Fprintf(&b, `<li>%d &times; %s ($%.2f each)</li>`, item.Quantity, item.ProductName, item.Price)
	}
	b.WriteString(`</ul><p>Please confirm and start preparing the order from your dashboard.</p>`)
	return b.String()
}
