package service

import (
	"errors"

	"goblog/internal/config"
	"goblog/internal/repository"
	"goblog/internal/storage"
)

var (
	ErrTokenExpired = errors.New("токен истек")
	ErrTokenInvalid = errors.New("недействительный токен")
	ErrUploadFailed = errors.New("ошибка загрузки изображения")
	ErrForbidden    = errors.New("доступ запрещен")
)

type Service struct {
	Auth AuthService
	User UserService
	Blog BlogService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(rep.User, storage, cfg),
		User: NewUserService(rep.User, storage, cfg),
		Blog: NewBlogService(rep.Blog, storage, cfg),
	}
}
