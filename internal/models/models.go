package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	UserID         string         `json:"id" db:"user_id"`
	Name           string         `json:"name" db:"name"`
	Email          string         `json:"email" db:"email"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	ProfilePicture string         `json:"profilePicture" db:"profile_picture"`
	Blogs          pq.StringArray `json:"blogs" db:"blogs"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

type Blog struct {
	BlogID      string         `json:"id" db:"blog_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Image       string         `json:"image" db:"image"`
	Category    pq.StringArray `json:"category" db:"category"`
	UserID      string         `json:"userId" db:"user_id"`
	Likes       pq.StringArray `json:"likes" db:"likes"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
	Author      *BlogAuthor    `json:"author,omitempty" db:"-"`
}

// BlogAuthor - публичная часть владельца блога для развёрнутых ответов
type BlogAuthor struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}
