package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/errors"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Comment string   `json:"comment" binding:"required"`
	Images  []string `json:"images"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type RespondReviewRequest struct {
	Response string `json:"response" binding:"required"`
}

// ListForProduct returns a product's reviews, newest first
// GET /api/v1/products/:id/reviews
func (ctrl *ReviewController) ListForProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	reviews, err := ctrl.reviewService.GetProductReviews(productID)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// Create adds the authenticated user's review of a product
// POST /api/v1/products/:id/reviews
func (ctrl *ReviewController) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ReviewInvalidRating, "Invalid review data")
		return
	}

	review := &model.Review{
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    pq.StringArray(req.Images),
	}

	created, err := ctrl.reviewService.CreateReview(userID, review)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": created})
}

// Update edits the user's own review
// PUT /api/v1/reviews/:id
func (ctrl *ReviewController) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	reviewID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ReviewInvalidRating, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.UpdateReview(userID, reviewID, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// Delete removes a review
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	reviewID, ok := parseIDParam(c)
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	if err := ctrl.reviewService.DeleteReview(userID, reviewID, role == model.RoleAdmin); err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// Respond attaches the artisan's reply to a review of their product
// POST /api/v1/reviews/:id/response
func (ctrl *ReviewController) Respond(c *gin.Context) {
	artisanID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	reviewID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RespondReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Response text is required")
		return
	}

	review, err := ctrl.reviewService.RespondToReview(artisanID, reviewID, req.Response)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}
