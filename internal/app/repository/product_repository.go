package repository

import (
	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Category     string
	Subcategory  string
	ArtisanID    uint
	Occasion     string
	Customizable *bool
	MinPrice     *float64
	MaxPrice     *float64
	Search       string
	SortBy       string // price_asc, price_desc, rating, newest
	AfterID      uint   // cursor: last product id of the previous page
	Limit        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	List(filter ProductFilter) ([]model.Product, int64, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":       product.Name,
		"artisan_id": product.ArtisanID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Artisan").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns one page of products plus the total count for the filter.
// Pagination is keyset-based: pass the last id of the previous page as
// AfterID. Keyset cursors only compose with the id ordering, so any
// explicit sort falls back to offset-free first-page semantics.
func (r *productRepository) List(filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.ArtisanID != 0 {
		query = query.Where("artisan_id = ?", filter.ArtisanID)
	}
	if filter.Occasion != "" {
		query = query.Where("occasion = ?", filter.Occasion)
	}
	if filter.Customizable != nil {
		query = query.Where("is_customizable = ?", *filter.Customizable)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count products", err, nil)
		return nil, 0, err
	}

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("price ASC, id ASC")
	case "price_desc":
		query = query.Order("price DESC, id ASC")
	case "rating":
		query = query.Order("average_rating DESC, id ASC")
	default:
		// newest first, cursor-friendly
		if filter.AfterID != 0 {
			query = query.Where("id < ?", filter.AfterID)
		}
		query = query.Order("id DESC")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var products []model.Product
	if err := query.Limit(limit).Find(&products).Error; err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&model.Product{}, id).Error
}
