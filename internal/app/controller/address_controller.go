package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{addressService: addressService}
}

type CreateAddressRequest struct {
	Street    string  `json:"street" binding:"required"`
	City      string  `json:"city" binding:"required"`
	State     string  `json:"state" binding:"required"`
	ZipCode   string  `json:"zip_code" binding:"required"`
	Country   string  `json:"country" binding:"required"`
	Label     *string `json:"label"`
	Phone     string  `json:"phone"`
	IsDefault bool    `json:"is_default"`
}

// updateAddressBody keeps raw JSON so a present-but-null label can be told
// apart from an absent one.
type updateAddressBody struct {
	Street    *string          `json:"street"`
	City      *string          `json:"city"`
	State     *string          `json:"state"`
	ZipCode   *string          `json:"zip_code"`
	Country   *string          `json:"country"`
	Phone     *string          `json:"phone"`
	Label     *json.RawMessage `json:"label"`
	IsDefault *bool            `json:"is_default"`
}

// List returns the user's address book
// GET /api/v1/addresses
func (ctrl *AddressController) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	addresses, err := ctrl.addressService.ListAddresses(userID)
	if err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// Create saves a new address
// POST /api/v1/addresses
func (ctrl *AddressController) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address := &model.Address{
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		Label:     req.Label,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	}

	created, err := ctrl.addressService.CreateAddress(userID, address)
	if err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": created})
}

// Update edits a saved address
// PATCH /api/v1/addresses/:id
func (ctrl *AddressController) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var body updateAddressBody
	if err := c.ShouldBindJSON(&body); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid address data")
		return
	}

	update := service.AddressUpdate{
		Street:    body.Street,
		City:      body.City,
		State:     body.State,
		ZipCode:   body.ZipCode,
		Country:   body.Country,
		Phone:     body.Phone,
		IsDefault: body.IsDefault,
	}
	if body.Label != nil {
		var label *string
		if err := json.Unmarshal(*body.Label, &label); err != nil {
			errors.BadRequest(c, errors.ValidationInvalidFormat, "Invalid label")
			return
		}
		update.Label = &label
	}

	address, err := ctrl.addressService.UpdateAddress(userID, c.Param("id"), update)
	if err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// Delete removes a saved address
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	if err := ctrl.addressService.DeleteAddress(userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// SetDefault marks one address as the default
// POST /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefault(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	if err := ctrl.addressService.SetDefaultAddress(userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
}
