package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/validation"
)

// respondServiceError translates service-layer failures into the standard
// error envelope. Anything unrecognized falls through ParseError so raw
// driver errors never reach clients.
func respondServiceError(c *gin.Context, err error, context string) {
	var fieldErrs validation.FieldErrors
	if stderrors.As(err, &fieldErrs) {
		errors.RespondWithValidationError(c, fieldErrs.Fields())
		return
	}

	var notFound *service.ProductNotFoundError
	if stderrors.As(err, &notFound) {
		errors.NotFound(c, errors.ProductNotFound, notFound.Error())
		return
	}

	var insufficient *service.InsufficientInventoryError
	if stderrors.As(err, &insufficient) {
		errors.UnprocessableEntity(c, errors.InventoryInsufficient, insufficient.Error())
		return
	}

	switch {
	case stderrors.Is(err, service.ErrUserNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "User not found")
	case stderrors.Is(err, service.ErrProductNotFound):
		errors.NotFound(c, errors.ProductNotFound, "Product not found")
	case stderrors.Is(err, service.ErrOrderNotFound):
		errors.NotFound(c, errors.OrderNotFound, "Order not found")
	case stderrors.Is(err, service.ErrAddressNotFound):
		errors.NotFound(c, errors.AddressNotFound, "Address not found")
	case stderrors.Is(err, service.ErrReviewNotFound):
		errors.NotFound(c, errors.ReviewNotFound, "Review not found")
	case stderrors.Is(err, service.ErrCartItemNotFound):
		errors.NotFound(c, errors.CartItemNotFound, "Cart item not found")
	case stderrors.Is(err, service.ErrEmptyCart):
		errors.BadRequest(c, errors.OrderEmptyCart, "Your cart is empty")
	case stderrors.Is(err, service.ErrOrderNoItems):
		errors.BadRequest(c, errors.OrderEmptyCart, "The order contains no items")
	case stderrors.Is(err, service.ErrInvalidDeliveryOption):
		errors.BadRequest(c, errors.ValidationInvalidInput, "Unknown delivery option")
	case stderrors.Is(err, service.ErrInvalidQuantity):
		errors.BadRequest(c, errors.ValidationInvalidRange, "Quantity must be positive")
	case stderrors.Is(err, service.ErrInvalidInventoryQty):
		errors.BadRequest(c, errors.ValidationInvalidRange, "Quantity must be positive")
	case stderrors.Is(err, service.ErrInvalidInventoryOp):
		errors.BadRequest(c, errors.InventoryInvalidOp, "Operation must be add or subtract")
	case stderrors.Is(err, service.ErrInvalidTransition):
		errors.Conflict(c, errors.OrderInvalidTransition, "This status change is not allowed")
	case stderrors.Is(err, service.ErrEmailAlreadyExists):
		errors.Conflict(c, errors.AuthEmailAlreadyExists, "This email address is already registered")
	case stderrors.Is(err, service.ErrInvalidCredentials):
		errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthInvalidCredentials, "Invalid email or password")
	case stderrors.Is(err, service.ErrNotProductOwner):
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzOwnerOnly, "This product belongs to another artisan")
	case stderrors.Is(err, service.ErrNotReviewOwner):
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzOwnerOnly, "This review belongs to another user")
	case stderrors.Is(err, service.ErrReviewAlreadyExists):
		errors.Conflict(c, errors.ReviewAlreadyExists, "You have already reviewed this product")
	case stderrors.Is(err, service.ErrReviewAlreadyResponded):
		errors.Conflict(c, errors.ReviewAlreadyResponded, "This review already has a response")
	case stderrors.Is(err, service.ErrAlreadyWishlisted):
		errors.Conflict(c, errors.WishlistAlreadyAdded, "This product is already in your wishlist")
	case stderrors.Is(err, service.ErrLastAddress):
		errors.Conflict(c, errors.AddressLastRemaining, "You must keep at least one saved address")
	case stderrors.Is(err, service.ErrTooManyAddresses):
		errors.Conflict(c, errors.AddressLimitExceeded, "Address book limit reached")
	default:
		info := errors.ParseError(err, context)
		status := http.StatusInternalServerError
		if info.Code == errors.ResourceNotFound {
			status = http.StatusNotFound
		}
		errors.RespondWithError(c, status, info.Code, info.Message)
	}
}
