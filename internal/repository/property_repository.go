package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"roomlink/internal/model"
)

// PropertyRepository defines property persistence operations.
type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	FindByID(ctx context.Context, id uint) (*model.Property, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Property, error)
	Search(ctx context.Context, filter model.PropertyFilter) ([]model.Property, error)
	Delete(ctx context.Context, id uint) error
}

type propertyRepository struct {
	base
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *gorm.DB, timeout time.Duration) PropertyRepository {
	return &propertyRepository{base{db: db, timeout: timeout}}
}

// Create creates a new property listing.
func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(property).Error
}

// UpdateFields applies a whitelisted column map to a property row.
func (r *propertyRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Model(&model.Property{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// FindByID finds a property by ID.
func (r *propertyRepository) FindByID(ctx context.Context, id uint) (*model.Property, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var property model.Property
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// ListByOwner lists all properties of an owner, newest first.
func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Property, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var properties []model.Property
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Search lists available properties matching the whitelisted filter fields.
func (r *propertyRepository) Search(ctx context.Context, filter model.PropertyFilter) ([]model.Property, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	q := r.db.WithContext(ctx).Where("available = ?", true)
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.MaxRent.IsPositive() {
		q = q.Where("rent <= ?", filter.MaxRent)
	}
	if filter.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", filter.MinBedrooms)
	}

	var properties []model.Property
	if err := q.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Delete soft-deletes a property.
func (r *propertyRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Delete(&model.Property{}, id).Error
}
