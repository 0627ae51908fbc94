package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type ProductController struct {
	productService   service.ProductService
	inventoryService service.InventoryService
}

func NewProductController(productService service.ProductService, inventoryService service.InventoryService) *ProductController {
	return &ProductController{
		productService:   productService,
		inventoryService: inventoryService,
	}
}

type AdjustInventoryRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Operation string `json:"operation" binding:"required,oneof=add subtract"`
}

// List returns one catalog page
// GET /api/v1/products
func (ctrl *ProductController) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Occasion:    c.Query("occasion"),
		Search:      c.Query("search"),
		SortBy:      c.Query("sort"),
	}

	if v := c.Query("artisan_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.ArtisanID = uint(id)
		}
	}
	if v := c.Query("customizable"); v != "" {
		b := v == "true"
		filter.Customizable = &b
	}
	if v := c.Query("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	if v := c.Query("after"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.AfterID = uint(id)
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	page, err := ctrl.productService.List(filter)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get returns one product
// GET /api/v1/products/:id
func (ctrl *ProductController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create adds a product to the artisan's shop
// POST /api/v1/products
func (ctrl *ProductController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	artisanID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ProductInvalidData, "Invalid product data")
		return
	}

	created, err := ctrl.productService.Create(artisanID, &product)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": created})
}

// Update edits a product the artisan owns
// PUT /api/v1/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	artisanID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var update model.Product
	if err := c.ShouldBindJSON(&update); err != nil {
		errors.BadRequest(c, errors.ProductInvalidData, "Invalid product data")
		return
	}

	product, err := ctrl.productService.Update(artisanID, id, &update)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete removes a product
// DELETE /api/v1/products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	artisanID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	if err := ctrl.productService.Delete(artisanID, id, role == model.RoleAdmin); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// AdjustInventory moves stock up or down for one product
// POST /api/v1/products/:id/inventory
func (ctrl *ProductController) AdjustInventory(c *gin.Context) {
	artisanID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	role, _ := middleware.GetUserRole(c)
	if product.ArtisanID != artisanID && role != model.RoleAdmin {
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzOwnerOnly, "This product belongs to another artisan")
		return
	}

	var req AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid inventory adjustment")
		return
	}

	updated, err := ctrl.inventoryService.Adjust(id, req.Quantity, service.InventoryOp(req.Operation))
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": updated})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
