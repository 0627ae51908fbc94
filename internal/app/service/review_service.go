package service

import (
	"errors"
	"time"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/validation"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound         = errors.New("review not found")
	ErrReviewAlreadyExists    = errors.New("user already reviewed this product")
	ErrReviewAlreadyResponded = errors.New("review already has an artisan response")
	ErrNotReviewOwner         = errors.New("review belongs to another user")
)

type ReviewService interface {
	CreateReview(userID uint, review *model.Review) (*model.Review, error)
	GetProductReviews(productID uint) ([]model.Review, error)
	UpdateReview(userID uint, reviewID uint, rating int, comment string) (*model.Review, error)
	DeleteReview(userID uint, reviewID uint, isAdmin bool) error
	RespondToReview(artisanID uint, reviewID uint, response string) (*model.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// CreateReview records a rating for a product. One review per customer per
// product; the product's rating summary is recomputed afterwards.
func (s *reviewService) CreateReview(userID uint, review *model.Review) (*model.Review, error) {
	product, err := s.productRepo.FindByID(review.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.FindByProductAndUser(review.ProductID, userID); err == nil {
		return nil, ErrReviewAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	review.UserID = userID
	review.UserName = user.DisplayName
	review.ArtisanResponse = nil
	review.ArtisanRespondedAt = nil

	if err := validation.Validate(review); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	if err := s.refreshProductRating(product.ID); err != nil {
		logger.Error("Failed to refresh product rating", err, map[string]interface{}{
			"product_id": product.ID,
		})
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})
	return review, nil
}

func (s *reviewService) GetProductReviews(productID uint) ([]model.Review, error) {
	return s.reviewRepo.FindByProductID(productID)
}

func (s *reviewService) UpdateReview(userID uint, reviewID uint, rating int, comment string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	review.Rating = rating
	review.Comment = comment

	if err := validation.Validate(review); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	if err := s.refreshProductRating(review.ProductID); err != nil {
		logger.Error("Failed to refresh product rating", err, map[string]interface{}{
			"product_id": review.ProductID,
		})
	}
	return review, nil
}

func (s *reviewService) DeleteReview(userID uint, reviewID uint, isAdmin bool) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if !isAdmin && review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}
	return s.refreshProductRating(review.ProductID)
}

// RespondToReview attaches the product owner's single public reply.
func (s *reviewService) RespondToReview(artisanID uint, reviewID uint, response string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	product, err := s.productRepo.FindByID(review.ProductID)
	if err != nil {
		return nil, err
	}
	if product.ArtisanID != artisanID {
		return nil, ErrNotProductOwner
	}
	if review.ArtisanResponse != nil {
		return nil, ErrReviewAlreadyResponded
	}

	now := time.Now()
	review.ArtisanResponse = &response
	review.ArtisanRespondedAt = &now

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) refreshProductRating(productID uint) error {
	avg, count, err := s.reviewRepo.AggregateByProductID(productID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return err
	}
	product.AverageRating = avg
	product.TotalReviews = int(count)
	return s.productRepo.Update(product)
}
