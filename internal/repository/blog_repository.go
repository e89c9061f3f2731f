package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"goblog/internal/models"
)

type blogRepository struct {
	db *sqlx.DB
}

// blogRow - строка выборки блога вместе с публичными полями владельца
type blogRow struct {
	models.Blog
	AuthorName           string `db:"author_name"`
	AuthorEmail          string `db:"author_email"`
	AuthorProfilePicture string `db:"author_profile_picture"`
}

func (row *blogRow) toBlog() models.Blog {
	blog := row.Blog
	blog.Author = &models.BlogAuthor{
		Name:           row.AuthorName,
		Email:          row.AuthorEmail,
		ProfilePicture: row.AuthorProfilePicture,
	}
	return blog
}

func NewBlogRepository(db *sqlx.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create вставляет блог и добавляет его id в список блогов владельца одной транзакцией
func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if blog.BlogID == "" {
		blog.BlogID = uuid.New().String()
	}
	if blog.Likes == nil {
		blog.Likes = pq.StringArray{}
	}

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO blogs (blog_id, title, description, image, category, user_id, likes, created_at, updated_at)
		VALUES (:blog_id, :title, :description, :image, :category, :user_id, :likes, :created_at, :updated_at)
	`

	_, err = tx.NamedExecContext(ctx, query, blog)
	if err != nil {
		return fmt.Errorf("ошибка при создании блога: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET blogs = array_append(blogs, $1), updated_at = $2 WHERE user_id = $3`,
		blog.BlogID, now, blog.UserID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении списка блогов пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, blog.UserID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, blogID string) (*models.Blog, error) {
	query := `
		SELECT b.*, u.name AS author_name, u.email AS author_email, u.profile_picture AS author_profile_picture
		FROM blogs b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.blog_id = $1
	`

	var row blogRow
	err := r.db.GetContext(ctx, &row, query, blogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrBlogNotFound, blogID)
		}
		return nil, fmt.Errorf("ошибка при получении блога: %w", err)
	}

	blog := row.toBlog()
	return &blog, nil
}

func (r *blogRepository) GetByUserID(ctx context.Context, userID string) ([]models.Blog, error) {
	query := `
		SELECT * FROM blogs
		WHERE user_id = $1
		ORDER BY created_at
	`

	var blogs []models.Blog
	err := r.db.SelectContext(ctx, &blogs, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении блогов пользователя: %w", err)
	}

	return blogs, nil
}

func (r *blogRepository) GetAll(ctx context.Context) ([]models.Blog, error) {
	query := `
		SELECT b.*, u.name AS author_name, u.email AS author_email, u.profile_picture AS author_profile_picture
		FROM blogs b
		JOIN users u ON u.user_id = b.user_id
		ORDER BY b.created_at
	`

	var rows []blogRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении блогов: %w", err)
	}

	blogs := make([]models.Blog, 0, len(rows))
	for i := range rows {
		blogs = append(blogs, rows[i].toBlog())
	}

	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	query := `
		UPDATE blogs SET
			title = :title,
			description = :description,
			image = :image,
			category = :category,
			updated_at = :updated_at
		WHERE blog_id = :blog_id AND user_id = :user_id
	`

	blog.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, blog)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении блога: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrBlogNotFound, blog.BlogID)
	}

	return nil
}

// Delete удаляет блог и убирает его id из списка владельца одной транзакцией
func (r *blogRepository) Delete(ctx context.Context, blogID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var ownerID string
	err = tx.GetContext(ctx, &ownerID,
		`DELETE FROM blogs WHERE blog_id = $1 RETURNING user_id`, blogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrBlogNotFound, blogID)
		}
		return fmt.Errorf("ошибка при удалении блога: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET blogs = array_remove(blogs, $1), updated_at = $2 WHERE user_id = $3`,
		blogID, time.Now(), ownerID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении списка блогов пользователя: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// ToggleLike переключает лайк одним атомарным запросом, id пользователя в likes не дублируется
func (r *blogRepository) ToggleLike(ctx context.Context, blogID, userID string) error {
	query := `
		UPDATE blogs SET
			likes = CASE
				WHEN $2 = ANY(likes) THEN array_remove(likes, $2)
				ELSE array_append(likes, $2)
			END,
			updated_at = $3
		WHERE blog_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, blogID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при переключении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrBlogNotFound, blogID)
	}

	return nil
}
