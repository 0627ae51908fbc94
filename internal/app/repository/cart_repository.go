package repository

import (
	"errors"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindItem(userID, productID uint) (*model.CartItem, error)
	Upsert(item *model.CartItem) error
	UpdateQuantity(userID, productID uint, quantity int) error
	Remove(userID, productID uint) error
	Clear(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindItem(userID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert adds the item, or folds the quantity into an existing line for
// the same product.
func (r *cartRepository) Upsert(item *model.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(item).Error
		}
		if err != nil {
			return err
		}

		existing.Quantity += item.Quantity
		if item.Customization != "" {
			existing.Customization = item.Customization
		}
		return tx.Save(&existing).Error
	})
}

func (r *cartRepository) UpdateQuantity(userID, productID uint, quantity int) error {
	result := r.db.Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepository) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}
