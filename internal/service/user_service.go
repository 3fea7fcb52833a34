package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"roomlink/internal/cache"
	apperrors "roomlink/internal/errors"
	"roomlink/internal/model"
	"roomlink/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileUpdate is the whitelisted set of profile fields a user may change.
// Nil pointers leave the column untouched. Columns are mapped here at compile
// time; request field names never reach the query builder.
type ProfileUpdate struct {
	Name       *string
	Phone      *string
	University *string
	Bio        *string
	AvatarPath *string
}

func (u ProfileUpdate) columns() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.University != nil {
		fields["university"] = *u.University
	}
	if u.Bio != nil {
		fields["bio"] = *u.Bio
	}
	if u.AvatarPath != nil {
		fields["avatar_path"] = *u.AvatarPath
	}
	return fields
}

// UserService exposes user directory operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error)
	VerifyCIN(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies the whitelisted field map and returns the fresh row.
func (s *userService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, id, update.columns()); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	return s.repo.FindByID(ctx, id)
}

// VerifyCIN marks a user's national ID as verified. The document check
// itself happens outside this service; only the flag lives here.
func (s *userService) VerifyCIN(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if user.CINVerified {
		return user, nil
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]interface{}{"cin_verified": true}); err != nil {
		return nil, fmt.Errorf("verify cin: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	user.CINVerified = true
	return user, nil
}
