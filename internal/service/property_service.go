package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"roomlink/internal/cache"
	apperrors "roomlink/internal/errors"
	"roomlink/internal/model"
	"roomlink/internal/repository"
)

const propertyCacheTTL = 2 * time.Minute

// PropertyUpdate is the whitelisted set of listing fields an owner may
// change. Same compile-time column mapping discipline as ProfileUpdate.
type PropertyUpdate struct {
	Title       *string
	Description *string
	Address     *string
	City        *string
	Type        *model.PropertyType
	Rent        *decimal.Decimal
	Bedrooms    *int
	Bathrooms   *int
	AreaSqM     *int
	Available   *bool
}

func (u PropertyUpdate) columns() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Address != nil {
		fields["address"] = *u.Address
	}
	if u.City != nil {
		fields["city"] = *u.City
	}
	if u.Type != nil {
		fields["type"] = *u.Type
	}
	if u.Rent != nil {
		fields["rent"] = *u.Rent
	}
	if u.Bedrooms != nil {
		fields["bedrooms"] = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		fields["bathrooms"] = *u.Bathrooms
	}
	if u.AreaSqM != nil {
		fields["area_sqm"] = *u.AreaSqM
	}
	if u.Available != nil {
		fields["available"] = *u.Available
	}
	return fields
}

// PropertyService exposes catalog operations.
type PropertyService interface {
	CreateProperty(ctx context.Context, property *model.Property) (*model.Property, error)
	GetProperty(ctx context.Context, id uint) (*model.Property, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Property, error)
	Search(ctx context.Context, filter model.PropertyFilter) ([]model.Property, error)
	UpdateProperty(ctx context.Context, id, callerID uint, callerRole model.Role, update PropertyUpdate) (*model.Property, error)
	DeleteProperty(ctx context.Context, id, callerID uint, callerRole model.Role) error
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	cache        *cache.Client
}

// NewPropertyService creates a new property service.
func NewPropertyService(propertyRepo repository.PropertyRepository, userRepo repository.UserRepository, cache *cache.Client) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

func (s *propertyService) cacheKey(id uint) string {
	return fmt.Sprintf("property:%d", id)
}

// CreateProperty validates the owner and inserts the listing.
func (s *propertyService) CreateProperty(ctx context.Context, property *model.Property) (*model.Property, error) {
	if property.Title == "" || property.Address == "" || property.City == "" {
		return nil, apperrors.ErrValidation
	}

	owner, err := s.userRepo.FindByID(ctx, property.OwnerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if owner.Role != model.RoleOwner && owner.Role != model.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

func (s *propertyService) GetProperty(ctx context.Context, id uint) (*model.Property, error) {
	var cached model.Property
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), property, propertyCacheTTL)
	return property, nil
}

func (s *propertyService) ListByOwner(ctx context.Context, ownerID uint) ([]model.Property, error) {
	return s.propertyRepo.ListByOwner(ctx, ownerID)
}

func (s *propertyService) Search(ctx context.Context, filter model.PropertyFilter) ([]model.Property, error) {
	return s.propertyRepo.Search(ctx, filter)
}

// UpdateProperty applies whitelisted fields; only the owner or an admin may
// change a listing.
func (s *propertyService) UpdateProperty(ctx context.Context, id, callerID uint, callerRole model.Role, update PropertyUpdate) (*model.Property, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, err
	}
	if property.OwnerID != callerID && callerRole != model.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if err := s.propertyRepo.UpdateFields(ctx, id, update.columns()); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	return s.propertyRepo.FindByID(ctx, id)
}

// DeleteProperty soft-deletes a listing; only the owner or an admin may.
func (s *propertyService) DeleteProperty(ctx context.Context, id, callerID uint, callerRole model.Role) error {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPropertyNotFound
		}
		return err
	}
	if property.OwnerID != callerID && callerRole != model.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
