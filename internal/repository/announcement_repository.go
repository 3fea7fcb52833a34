package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"roomlink/internal/model"
)

// AnnouncementRepository defines announcement persistence operations.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	FindByID(ctx context.Context, id uint) (*model.Announcement, error)
	List(ctx context.Context) ([]model.Announcement, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	base
}

// NewAnnouncementRepository creates a new announcement repository.
func NewAnnouncementRepository(db *gorm.DB, timeout time.Duration) AnnouncementRepository {
	return &announcementRepository{base{db: db, timeout: timeout}}
}

// Create creates a new announcement.
func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(announcement).Error
}

// FindByID finds an announcement by ID.
func (r *announcementRepository) FindByID(ctx context.Context, id uint) (*model.Announcement, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var announcement model.Announcement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&announcement).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// List lists all announcements, newest first.
func (r *announcementRepository) List(ctx context.Context) ([]model.Announcement, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var announcements []model.Announcement
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

// ListByUser lists a user's announcements, newest first.
func (r *announcementRepository) ListByUser(ctx context.Context, userID uint) ([]model.Announcement, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var announcements []model.Announcement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

// Delete soft-deletes an announcement.
func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Delete(&model.Announcement{}, id).Error
}
