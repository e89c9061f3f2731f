package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goblog/internal/config"
	"goblog/internal/models"
	"goblog/internal/repository"
)

type mockBlogRepository struct {
	mock.Mock
}

func (m *mockBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *mockBlogRepository) GetByID(ctx context.Context, blogID string) (*models.Blog, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *mockBlogRepository) GetByUserID(ctx context.Context, userID string) ([]models.Blog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *mockBlogRepository) GetAll(ctx context.Context) ([]models.Blog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *mockBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *mockBlogRepository) Delete(ctx context.Context, blogID string) error {
	args := m.Called(ctx, blogID)
	return args.Error(0)
}

func (m *mockBlogRepository) ToggleLike(ctx context.Context, blogID, userID string) error {
	args := m.Called(ctx, blogID, userID)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadImage(ctx context.Context, prefix string, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, prefix, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func TestBlogService_DeleteBlog_OwnerCheckDisabled(t *testing.T) {
	repo := new(mockBlogRepository)
	cfg := &config.Config{BlogDeleteOwnerCheck: false}
	svc := NewBlogService(repo, new(mockStorage), cfg)

	// чужой блог удаляется, пока проверка владельца выключена
	repo.On("GetByID", mock.Anything, "blog-1").
		Return(&models.Blog{BlogID: "blog-1", UserID: "owner"}, nil)
	repo.On("Delete", mock.Anything, "blog-1").Return(nil)

	err := svc.DeleteBlog(context.Background(), "blog-1", "stranger")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBlogService_DeleteBlog_OwnerCheckEnabled(t *testing.T) {
	repo := new(mockBlogRepository)
	cfg := &config.Config{BlogDeleteOwnerCheck: true}
	svc := NewBlogService(repo, new(mockStorage), cfg)

	repo.On("GetByID", mock.Anything, "blog-1").
		Return(&models.Blog{BlogID: "blog-1", UserID: "owner"}, nil)

	err := svc.DeleteBlog(context.Background(), "blog-1", "stranger")

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestBlogService_DeleteBlog_NotFound(t *testing.T) {
	repo := new(mockBlogRepository)
	svc := NewBlogService(repo, new(mockStorage), &config.Config{})

	repo.On("GetByID", mock.Anything, "ghost").
		Return(nil, repository.ErrBlogNotFound)

	err := svc.DeleteBlog(context.Background(), "ghost", "user-1")

	assert.ErrorIs(t, err, repository.ErrBlogNotFound)
}

func TestBlogService_UpdateBlog_Forbidden(t *testing.T) {
	repo := new(mockBlogRepository)
	svc := NewBlogService(repo, new(mockStorage), &config.Config{})

	repo.On("GetByID", mock.Anything, "blog-1").
		Return(&models.Blog{BlogID: "blog-1", UserID: "owner", Title: "Старый"}, nil)

	blog, err := svc.UpdateBlog(context.Background(), UpdateBlogRequest{
		BlogID:   "blog-1",
		CallerID: "stranger",
		Title:    "Новый",
	})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, blog)
	// запись не происходит
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBlogService_UpdateBlog_PartialFields(t *testing.T) {
	repo := new(mockBlogRepository)
	svc := NewBlogService(repo, new(mockStorage), &config.Config{})

	stored := &models.Blog{
		BlogID:      "blog-1",
		UserID:      "owner",
		Title:       "Старый заголовок",
		Description: "Старое описание",
		Image:       "old.jpg",
		Category:    []string{"tech"},
	}

	repo.On("GetByID", mock.Anything, "blog-1").Return(stored, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	blog, err := svc.UpdateBlog(context.Background(), UpdateBlogRequest{
		BlogID:   "blog-1",
		CallerID: "owner",
		Title:    "Новый заголовок",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Новый заголовок", blog.Title)
	// пустые поля сохраняют старые значения
	assert.Equal(t, "Старое описание", blog.Description)
	assert.Equal(t, "old.jpg", blog.Image)
}

func TestBlogService_GetUserBlogs_Empty(t *testing.T) {
	repo := new(mockBlogRepository)
	svc := NewBlogService(repo, new(mockStorage), &config.Config{})

	repo.On("GetByUserID", mock.Anything, "user-1").Return([]models.Blog{}, nil)

	blogs, err := svc.GetUserBlogs(context.Background(), "user-1")

	// пустой список считается "не найдено"
	assert.ErrorIs(t, err, repository.ErrBlogNotFound)
	assert.Nil(t, blogs)
}

func TestBlogService_ToggleLike(t *testing.T) {
	repo := new(mockBlogRepository)
	svc := NewBlogService(repo, new(mockStorage), &config.Config{})

	repo.On("ToggleLike", mock.Anything, "blog-1", "user-2").Return(nil)
	repo.On("GetByID", mock.Anything, "blog-1").
		Return(&models.Blog{BlogID: "blog-1", UserID: "owner", Likes: []string{"user-2"}}, nil)

	blog, err := svc.ToggleLike(context.Background(), "blog-1", "user-2")

	assert.NoError(t, err)
	assert.Contains(t, blog.Likes, "user-2")
	repo.AssertExpectations(t)
}
