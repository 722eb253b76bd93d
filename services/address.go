package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

// AddressService manages a customer's saved delivery addresses. At most one
// address per user is the default.
type AddressService struct {
	addresses AddressStore
	now       func() time.Time
}

func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses, now: time.Now}
}

func (s *AddressService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	return s.addresses.List(ctx, userID)
}

// Create saves a new address. A user's first address becomes the default.
func (s *AddressService) Create(ctx context.Context, userID primitive.ObjectID, req models.AddressRequest) (*models.Address, error) {
	count, err := s.addresses.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		req.IsDefault = true
	}
	if req.IsDefault {
		if err := s.addresses.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	a := &models.Address{UserID: userID, CreatedAt: now}
	applyAddress(a, req, now)
	if err := s.addresses.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the fields of one of the user's addresses.
func (s *AddressService) Update(ctx context.Context, userID primitive.ObjectID, idHex string, req models.AddressRequest) (*models.Address, error) {
	id, err := ParseID("id", idHex)
	if err != nil {
		return nil, err
	}
	a, err := s.addresses.Get(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.IsDefault && !a.IsDefault {
		if err := s.addresses.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}
	applyAddress(a, req, s.now())
	if err := s.addresses.Replace(ctx, a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AddressService) Delete(ctx context.Context, userID primitive.ObjectID, idHex string) error {
	id, err := ParseID("id", idHex)
	if err != nil {
		return err
	}
	err = s.addresses.Delete(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAddressNotFound
	}
	return err
}

func applyAddress(a *models.Address, req models.AddressRequest, now time.Time) {
	a.FullName = req.FullName
	a.Phone = req.Phone
	a.AddressLine1 = req.AddressLine1
	a.AddressLine2 = req.AddressLine2
	a.Landmark = req.Landmark
	a.City = req.City
	a.State = req.State
	a.Pincode = req.Pincode
	a.IsDefault = req.IsDefault
	a.UpdatedAt = now
}
