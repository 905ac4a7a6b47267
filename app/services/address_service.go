package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"gorm.io/gorm"
)

type AddressInput struct {
	FullName     string `json:"full_name" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country"`
	AddressType  string `json:"address_type"`
	IsDefault    *bool  `json:"is_default"`
}

type AddressService struct {
	db          *gorm.DB
	addressRepo repositories.AddressRepository
}

func NewAddressService(db *gorm.DB, addressRepo repositories.AddressRepository) *AddressService {
	return &AddressService{db: db, addressRepo: addressRepo}
}

func (s *AddressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Create stores a new address. The first address of a user always becomes
// the default; an explicit default clears the flag on the others.
func (s *AddressService) Create(ctx context.Context, userID string, in AddressInput) (*models.Address, error) {
	address := &models.Address{
		UserID:       userID,
		FullName:     in.FullName,
		PhoneNumber:  in.PhoneNumber,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		AddressType:  in.AddressType,
		IsDefault:    in.IsDefault != nil && *in.IsDefault,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := s.addressRepo.UnsetDefault(ctx, tx, userID, ""); err != nil {
				return err
			}
		}
		count, err := s.addressRepo.CountByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		}
		return s.addressRepo.Create(ctx, tx, address)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add address: %w", err)
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id string, in AddressInput) (*models.Address, error) {
	var address *models.Address
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.addressRepo.FindForUser(ctx, tx, id, userID)
		if err != nil {
			return fmt.Errorf("failed to load address: %w", err)
		}
		if found == nil {
			return apperr.NotFound("Address not found")
		}

		found.FullName = in.FullName
		found.PhoneNumber = in.PhoneNumber
		found.AddressLine1 = in.AddressLine1
		found.AddressLine2 = in.AddressLine2
		found.City = in.City
		found.State = in.State
		found.PostalCode = in.PostalCode
		if in.Country != "" {
			found.Country = in.Country
		}
		if in.AddressType != "" {
			found.AddressType = in.AddressType
		}
		if in.IsDefault != nil {
			found.IsDefault = *in.IsDefault
			if found.IsDefault {
				if err := s.addressRepo.UnsetDefault(ctx, tx, userID, found.ID); err != nil {
					return fmt.Errorf("failed to update default address: %w", err)
				}
			}
		}
		if err := s.addressRepo.Update(ctx, tx, found); err != nil {
			return fmt.Errorf("failed to update address: %w", err)
		}
		address = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.addressRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if !ok {
		return apperr.NotFound("Address not found")
	}
	return nil
}

func (s *AddressService) SetDefault(ctx context.Context, userID, id string) (*models.Address, error) {
	var address *models.Address
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.addressRepo.FindForUser(ctx, tx, id, userID)
		if err != nil {
			return fmt.Errorf("failed to load address: %w", err)
		}
		if found == nil {
			return apperr.NotFound("Address not found")
		}
		if err := s.addressRepo.UnsetDefault(ctx, tx, userID, ""); err != nil {
			return fmt.Errorf("failed to set default address: %w", err)
		}
		if err := s.addressRepo.SetDefault(ctx, tx, found.ID); err != nil {
			return fmt.Errorf("failed to set default address: %w", err)
		}
		found.IsDefault = true
		address = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}
