package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

type AddWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// Get returns the user's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	items, err := ctrl.wishlistService.GetWishlist(userID)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// Add puts a product on the wishlist
// POST /api/v1/wishlist
func (ctrl *WishlistController) Add(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Product ID is required")
		return
	}

	if err := ctrl.wishlistService.Add(userID, req.ProductID); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist"})
}

// Remove takes a product off the wishlist
// DELETE /api/v1/wishlist/:productId
func (ctrl *WishlistController) Remove(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.wishlistService.Remove(userID, uint(productID)); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
