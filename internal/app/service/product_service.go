package service

import (
	"errors"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/validation"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("product belongs to another artisan")
)

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products   []model.Product `json:"products"`
	Total      int64           `json:"total"`
	NextCursor uint            `json:"next_cursor,omitempty"`
}

type ProductService interface {
	Create(artisanID uint, product *model.Product) (*model.Product, error)
	GetByID(id uint) (*model.Product, error)
	List(filter repository.ProductFilter) (*ProductPage, error)
	Update(artisanID uint, productID uint, update *model.Product) (*model.Product, error)
	Delete(artisanID uint, productID uint, isAdmin bool) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(artisanID uint, product *model.Product) (*model.Product, error) {
	product.ArtisanID = artisanID
	product.AverageRating = 0
	product.TotalReviews = 0

	if err := validation.Validate(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"artisan_id": artisanID,
	})
	return product, nil
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) List(filter repository.ProductFilter) (*ProductPage, error) {
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{
		Products: products,
		Total:    total,
	}
	if len(products) > 0 {
		page.NextCursor = products[len(products)-1].ID
	}
	return page, nil
}

// Update rewrites the editable fields of a product the artisan owns.
// Rating aggregates and ownership are never client-writable.
func (s *productService) Update(artisanID uint, productID uint, update *model.Product) (*model.Product, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product.ArtisanID != artisanID {
		return nil, ErrNotProductOwner
	}

	product.Name = update.Name
	product.Description = update.Description
	product.Price = update.Price
	product.DiscountedPrice = update.DiscountedPrice
	product.Currency = update.Currency
	product.Images = update.Images
	product.Category = update.Category
	product.Subcategory = update.Subcategory
	product.Inventory = update.Inventory
	product.Tags = update.Tags
	product.Materials = update.Materials
	product.Occasion = update.Occasion
	product.IsCustomizable = update.IsCustomizable

	if err := validation.Validate(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(artisanID uint, productID uint, isAdmin bool) error {
	product, err := s.GetByID(productID)
	if err != nil {
		return err
	}
	if !isAdmin && product.ArtisanID != artisanID {
		return ErrNotProductOwner
	}

	if err := s.productRepo.Delete(productID); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": productID,
		"artisan_id": product.ArtisanID,
	})
	return nil
}
