package errors

// Error code constants, shaped as CATEGORY_SPECIFIC_DETAIL.
// Clients map these codes to their own user-facing copy.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzArtisanOnly  = "AUTHZ_ARTISAN_ONLY"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"
	ProductOutOfStock  = "PRODUCT_OUT_OF_STOCK"
	ProductInvalidData = "PRODUCT_INVALID_DATA"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderEmptyCart         = "ORDER_EMPTY_CART"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"
	OrderPlacementFailed   = "ORDER_PLACEMENT_FAILED"

	// ==================== Inventory (INVENTORY_) ====================
	InventoryInsufficient = "INVENTORY_INSUFFICIENT"
	InventoryInvalidOp    = "INVENTORY_INVALID_OPERATION"

	// ==================== Addresses (ADDRESS_) ====================
	AddressNotFound      = "ADDRESS_NOT_FOUND"
	AddressLastRemaining = "ADDRESS_LAST_REMAINING"
	AddressLimitExceeded = "ADDRESS_LIMIT_EXCEEDED"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound         = "REVIEW_NOT_FOUND"
	ReviewAlreadyExists    = "REVIEW_ALREADY_EXISTS"
	ReviewAlreadyResponded = "REVIEW_ALREADY_RESPONDED"
	ReviewInvalidRating    = "REVIEW_INVALID_RATING"

	// ==================== Cart / Wishlist (CART_) ====================
	CartItemNotFound     = "CART_ITEM_NOT_FOUND"
	WishlistAlreadyAdded = "WISHLIST_ALREADY_ADDED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalMailError     = "INTERNAL_MAIL_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
