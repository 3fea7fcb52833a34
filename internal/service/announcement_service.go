package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "roomlink/internal/errors"
	"roomlink/internal/model"
	"roomlink/internal/repository"
)

// AnnouncementService handles the roommate board.
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error)
	GetAnnouncement(ctx context.Context, id uint) (*model.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id, callerID uint, callerRole model.Role) error
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	userRepo         repository.UserRepository
}

// NewAnnouncementService creates a new announcement service.
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, userRepo repository.UserRepository) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		userRepo:         userRepo,
	}
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, announcement *model.Announcement) (*model.Announcement, error) {
	announcement.Title = strings.TrimSpace(announcement.Title)
	announcement.Content = strings.TrimSpace(announcement.Content)
	if announcement.Title == "" || announcement.Content == "" {
		return nil, apperrors.ErrValidation
	}
	if announcement.Type == "" {
		announcement.Type = model.AnnouncementGeneral
	}

	if _, err := s.userRepo.FindByID(ctx, announcement.UserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) GetAnnouncement(ctx context.Context, id uint) (*model.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return s.announcementRepo.List(ctx)
}

func (s *announcementService) ListByUser(ctx context.Context, userID uint) ([]model.Announcement, error) {
	return s.announcementRepo.ListByUser(ctx, userID)
}

// DeleteAnnouncement removes a post; only its author or an admin may.
func (s *announcementService) DeleteAnnouncement(ctx context.Context, id, callerID uint, callerRole model.Role) error {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAnnouncementNotFound
		}
		return err
	}
	if announcement.UserID != callerID && callerRole != model.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return s.announcementRepo.Delete(ctx, id)
}
