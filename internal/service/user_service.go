package service

import (
	"context"
	"fmt"
	"io"

	"goblog/internal/config"
	"goblog/internal/models"
	"goblog/internal/repository"
	"goblog/internal/storage"
)

type UpdateProfileRequest struct {
	UserID     string
	CallerID   string
	Name       string
	Email      string
	AvatarName string
	Avatar     io.Reader
	AvatarSize int64
}

type UserService interface {
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *userService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	// only the owner can edit the profile
	if req.UserID != req.CallerID {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetUserByID(ctx, req.CallerID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email

	if req.Avatar != nil {
		_, avatarURL, err := s.storage.UploadImage(ctx, "avatars", req.AvatarName, req.Avatar, req.AvatarSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		user.ProfilePicture = avatarURL
	}

	err = s.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
