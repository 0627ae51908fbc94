package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed, client-safe view of an internal error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts storage and driver errors into stable codes without
// leaking internals. The context string names the entity being operated on
// ("product", "order", ...) so not-found messages read naturally.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL unique violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// PostgreSQL foreign key violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The referenced " + contextOr(context, "record") + " does not exist or is still in use",
		}
	}

	// PostgreSQL not-null violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}
	if strings.Contains(errLower, "idx_product_user_review") {
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "You have already reviewed this product",
		}
	}
	if strings.Contains(errLower, "idx_user_product_wish") {
		return ErrorInfo{
			Code:    WishlistAlreadyAdded,
			Message: "This product is already in your wishlist",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "A record with the same identifier already exists",
	}
}

func notFoundMessage(context string) string {
	switch context {
	case "user":
		return "User not found"
	case "product":
		return "Product not found"
	case "order":
		return "Order not found"
	case "address":
		return "Address not found"
	case "review":
		return "Review not found"
	case "cart":
		return "Cart item not found"
	default:
		return "The requested resource was not found"
	}
}

func defaultMessage(context string) string {
	if context == "" {
		return "Something went wrong. Please try again later"
	}
	return "Failed to process the " + context + " request. Please try again later"
}

func contextOr(context, fallback string) string {
	if context == "" {
		return fallback
	}
	return context
}
