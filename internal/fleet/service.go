package fleet

import (
	"context"
	"errors"
	"strings"
)

type CreateRequest struct {
	VendorID      string
	Type          ResourceType
	Name          string
	PlateNumber   *string
	LicenseNumber *string
	Phone         *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, vendorID string) (*List, error)
	Delete(ctx context.Context, vendorID, id string) error

	// OwnsResource reports whether the resource belongs to the vendor and has
	// the expected type. It fails closed: an unknown resource is not owned.
	OwnsResource(ctx context.Context, vendorID, resourceID string, resourceType ResourceType) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Resource, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}

	res := &Resource{
		VendorID:      req.VendorID,
		Type:          req.Type,
		Name:          strings.TrimSpace(req.Name),
		PlateNumber:   req.PlateNumber,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, vendorID string) (*List, error) {
	resources, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	list := &List{}
	for _, res := range resources {
		switch res.Type {
		case TypeDriver:
			list.Drivers = append(list.Drivers, res)
		default:
			list.Vehicles = append(list.Vehicles, res)
		}
	}
	return list, nil
}

func (s *service) Delete(ctx context.Context, vendorID, id string) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res.VendorID != vendorID {
		return ErrNotOwned
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) OwnsResource(ctx context.Context, vendorID, resourceID string, resourceType ResourceType) (bool, error) {
	res, err := s.repo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return res.VendorID == vendorID && res.Type == resourceType, nil
}
