package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"goblog/internal/models"
)

var (
	ErrUserNotFound  = errors.New("пользователь не найден")
	ErrBlogNotFound  = errors.New("блог не найден")
	ErrEmailExists   = errors.New("email уже существует")
	ErrWrongPassword = errors.New("неверный пароль")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, blogID string) (*models.Blog, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Blog, error)
	GetAll(ctx context.Context) ([]models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, blogID string) error
	ToggleLike(ctx context.Context, blogID, userID string) error
}

type Repository struct {
	User UserRepository
	Blog BlogRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Blog: NewBlogRepository(db),
	}
}
