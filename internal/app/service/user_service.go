package service

import (
	"errors"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/validation"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProfileUpdate carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

// ArtisanSettingsUpdate covers the seller-side preference block.
type ArtisanSettingsUpdate struct {
	PayoutSchedule       *string `json:"payout_schedule,omitempty" binding:"omitempty,oneof=weekly biweekly monthly"`
	AutomaticPayout      *bool   `json:"automatic_payout,omitempty"`
	ShippingFrom         *string `json:"shipping_from,omitempty"`
	ShippingStandard     *bool   `json:"shipping_standard,omitempty"`
	ShippingExpress      *bool   `json:"shipping_express,omitempty"`
	NotifyNewOrder       *bool   `json:"notify_new_order,omitempty"`
	NotifyOrderShipped   *bool   `json:"notify_order_shipped,omitempty"`
	NotifyPaymentReceive *bool   `json:"notify_payment_received,omitempty"`
}

type UserService interface {
	GetByID(id uint) (*model.User, error)
	EnsureUser(email, phone, displayName string) (*model.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error)
	UpdateArtisanSettings(userID uint, update ArtisanSettingsUpdate) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// EnsureUser resolves an externally authenticated identity to a local
// account, creating one on first contact. Lookup tries email first, then
// falls back to the phone number for accounts originally created through
// phone sign-in.
func (s *userService) EnsureUser(email, phone, displayName string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if phone != "" {
		user, err = s.userRepo.FindByPhone(phone)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if displayName == "" {
		displayName = email
	}
	user = &model.User{
		Email:       email,
		Phone:       phone,
		DisplayName: displayName,
		// no password; these accounts authenticate externally
		PasswordHash: "!",
		Role:         model.RoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("Created account on first authentication", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, nil
}

func (s *userService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.PhotoURL != nil {
		user.PhotoURL = *update.PhotoURL
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.CompanyName != nil {
		user.CompanyName = *update.CompanyName
	}

	if err := validation.Validate(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateArtisanSettings(userID uint, update ArtisanSettingsUpdate) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.PayoutSchedule != nil {
		user.PayoutSchedule = *update.PayoutSchedule
	}
	if update.AutomaticPayout != nil {
		user.AutomaticPayout = *update.AutomaticPayout
	}
	if update.ShippingFrom != nil {
		user.ShippingFrom = *update.ShippingFrom
	}
	if update.ShippingStandard != nil {
		user.ShippingStandard = *update.ShippingStandard
	}
	if update.ShippingExpress != nil {
		user.ShippingExpress = *update.ShippingExpress
	}
	if update.NotifyNewOrder != nil {
		user.NotifyNewOrder = *update.NotifyNewOrder
	}
	if update.NotifyOrderShipped != nil {
		user.NotifyOrderShipped = *update.NotifyOrderShipped
	}
	if update.NotifyPaymentReceive != nil {
		user.NotifyPaymentReceive = *update.NotifyPaymentReceive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
