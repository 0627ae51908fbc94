package service

import (
	"errors"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrAlreadyWishlisted = errors.New("product already in wishlist")

type WishlistService interface {
	GetWishlist(userID uint) ([]model.WishlistItem, error)
	Add(userID, productID uint) error
	Remove(userID, productID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetWishlist(userID uint) ([]model.WishlistItem, error) {
	return s.wishlistRepo.FindByUserID(userID)
}

func (s *wishlistService) Add(userID, productID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyWishlisted
	}

	return s.wishlistRepo.Add(&model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

func (s *wishlistService) Remove(userID, productID uint) error {
	return s.wishlistRepo.Remove(userID, productID)
}
