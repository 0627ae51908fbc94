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
	ErrLastAddress      = errors.New("cannot delete the only saved address")
	ErrTooManyAddresses = errors.New("address limit reached")
)

// maxAddressesPerUser caps the address book size.
const maxAddressesPerUser = 10

// AddressUpdate distinguishes "field absent" from "field set to null" for
// the nullable label. Pointer-to-pointer keeps both states representable.
type AddressUpdate struct {
	Street    *string  `json:"street,omitempty"`
	City      *string  `json:"city,omitempty"`
	State     *string  `json:"state,omitempty"`
	ZipCode   *string  `json:"zip_code,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Label     **string `json:"-"`
	IsDefault *bool    `json:"is_default,omitempty"`
}

type AddressService interface {
	ListAddresses(userID uint) ([]model.Address, error)
	CreateAddress(userID uint, address *model.Address) (*model.Address, error)
	UpdateAddress(userID uint, addressID string, update AddressUpdate) (*model.Address, error)
	DeleteAddress(userID uint, addressID string) error
	SetDefaultAddress(userID uint, addressID string) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) ListAddresses(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

// CreateAddress adds an address to the user's book. The first address
// automatically becomes the default.
func (s *addressService) CreateAddress(userID uint, address *model.Address) (*model.Address, error) {
	count, err := s.addressRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	if count >= maxAddressesPerUser {
		return nil, ErrTooManyAddresses
	}

	address.UserID = userID
	if count == 0 {
		address.IsDefault = true
	}

	if err := validation.Validate(address); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}

	logger.Info("Address created", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
		"is_default": address.IsDefault,
	})
	return address, nil
}

func (s *addressService) UpdateAddress(userID uint, addressID string, update AddressUpdate) (*model.Address, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if update.Street != nil {
		address.Street = *update.Street
	}
	if update.City != nil {
		address.City = *update.City
	}
	if update.State != nil {
		address.State = *update.State
	}
	if update.ZipCode != nil {
		address.ZipCode = *update.ZipCode
	}
	if update.Country != nil {
		address.Country = *update.Country
	}
	if update.Phone != nil {
		address.Phone = *update.Phone
	}
	if update.Label != nil {
		// outer pointer set means the label field was present; the inner
		// pointer may be nil to clear the label
		address.Label = *update.Label
	}
	if update.IsDefault != nil && *update.IsDefault {
		address.IsDefault = true
	}

	if err := validation.Validate(address); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress removes a saved address. The last remaining address cannot
// be deleted, and deleting the default promotes the oldest survivor.
func (s *addressService) DeleteAddress(userID uint, addressID string) error {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return err
	}

	count, err := s.addressRepo.CountByUserID(userID)
	if err != nil {
		return err
	}
	if count <= 1 {
		logger.Warn("Refusing to delete the only saved address", map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return ErrLastAddress
	}

	if err := s.addressRepo.Delete(addressID); err != nil {
		return err
	}

	if address.IsDefault {
		remaining, err := s.addressRepo.FindByUserID(userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return s.addressRepo.SetDefault(userID, remaining[0].ID)
		}
	}
	return nil
}

func (s *addressService) SetDefaultAddress(userID uint, addressID string) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.SetDefault(userID, addressID)
}

func (s *addressService) ownedAddress(userID uint, addressID string) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}
