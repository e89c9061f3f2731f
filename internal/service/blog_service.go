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

type CreateBlogRequest struct {
	UserID      string
	Title       string
	Description string
	Category    []string
	ImageName   string
	Image       io.Reader
	ImageSize   int64
}

type UpdateBlogRequest struct {
	BlogID      string
	CallerID    string
	Title       string
	Description string
	Category    []string
	ImageName   string
	Image       io.Reader
	ImageSize   int64
}

type BlogService interface {
	CreateBlog(ctx context.Context, req CreateBlogRequest) (*models.Blog, error)
	GetBlog(ctx context.Context, blogID string) (*models.Blog, error)
	GetUserBlogs(ctx context.Context, userID string) ([]models.Blog, error)
	GetAllBlogs(ctx context.Context) ([]models.Blog, error)
	UpdateBlog(ctx context.Context, req UpdateBlogRequest) (*models.Blog, error)
	DeleteBlog(ctx context.Context, blogID, callerID string) error
	ToggleLike(ctx context.Context, blogID, userID string) (*models.Blog, error)
}

type blogService struct {
	blogRepo repository.BlogRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewBlogService(blogRepo repository.BlogRepository, storage storage.Storage, cfg *config.Config) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *blogService) CreateBlog(ctx context.Context, req CreateBlogRequest) (*models.Blog, error) {
	_, imageURL, err := s.storage.UploadImage(ctx, "blogs", req.ImageName, req.Image, req.ImageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	blog := &models.Blog{
		Title:       req.Title,
		Description: req.Description,
		Image:       imageURL,
		Category:    req.Category,
		UserID:      req.UserID,
	}

	err = s.blogRepo.Create(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *blogService) GetBlog(ctx context.Context, blogID string) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, blogID)
}

func (s *blogService) GetUserBlogs(ctx context.Context, userID string) ([]models.Blog, error) {
	blogs, err := s.blogRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// empty list is reported as not found
	if len(blogs) == 0 {
		return nil, fmt.Errorf("%w: у пользователя %s нет блогов", repository.ErrBlogNotFound, userID)
	}

	return blogs, nil
}

func (s *blogService) GetAllBlogs(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, repository.ErrBlogNotFound
	}

	return blogs, nil
}

// UpdateBlog обновляет только переданные поля, пустые значения сохраняют старые
func (s *blogService) UpdateBlog(ctx context.Context, req UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, req.BlogID)
	if err != nil {
		return nil, err
	}

	// the author of the blog does not change
	if blog.UserID != req.CallerID {
		return nil, ErrForbidden
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Description != "" {
		blog.Description = req.Description
	}
	if len(req.Category) > 0 {
		blog.Category = req.Category
	}

	if req.Image != nil {
		_, imageURL, err := s.storage.UploadImage(ctx, "blogs", req.ImageName, req.Image, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		blog.Image = imageURL
	}

	err = s.blogRepo.Update(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// DeleteBlog проверяет владельца только при включенном BLOG_DELETE_OWNER_CHECK
func (s *blogService) DeleteBlog(ctx context.Context, blogID, callerID string) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}

	if s.cfg.BlogDeleteOwnerCheck && blog.UserID != callerID {
		return ErrForbidden
	}

	return s.blogRepo.Delete(ctx, blogID)
}

func (s *blogService) ToggleLike(ctx context.Context, blogID, userID string) (*models.Blog, error) {
	err := s.blogRepo.ToggleLike(ctx, blogID, userID)
	if err != nil {
		return nil, err
	}

	return s.blogRepo.GetByID(ctx, blogID)
}
