package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"goblog/internal/config"
	"goblog/internal/models"
	"goblog/internal/repository"
	"goblog/internal/storage"
)

type RegisterRequest struct {
	Name       string
	Email      string
	Password   string
	AvatarName string
	Avatar     io.Reader
	AvatarSize int64
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GenerateToken(userID string) (string, error)
	ValidateToken(tokenString string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	// upload avatar before the store write
	_, avatarURL, err := s.storage.UploadImage(ctx, "avatars", req.AvatarName, req.Avatar, req.AvatarSize)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		ProfilePicture: avatarURL,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.UserID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.UserID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GenerateToken выпускает сессионный токен на TokenDuration (6 часов по умолчанию)
func (s *authService) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// ValidateToken возвращает id пользователя из claims,
// ErrTokenExpired для просроченного и ErrTokenInvalid для битого токена
func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// checking the signature algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalid
	}

	return userID, nil
}
