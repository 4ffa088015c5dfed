// Package testutil seeds databases for tests.
package testutil

import (
	"testing"
	"time"

	"blogicum/models"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"
)

const DefaultPassword = "s3cret-pass"

func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	if username == "" {
		username = "user" + gofakeit.DigitN(8)
	}
	user := &models.User{
		Username:  username,
		Email:     username + "@" + gofakeit.DomainName(),
		Password:  DefaultPassword,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	if err := user.HashPassword(); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateCategory(t testing.TB, db *gorm.DB, categorySlug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{
		Slug:        categorySlug,
		Title:       gofakeit.BookTitle(),
		Description: gofakeit.Sentence(8),
		IsPublished: published,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// PostOption tweaks a post before it is inserted.
type PostOption func(*models.Post)

func Unpublished() PostOption {
	return func(p *models.Post) { p.IsPublished = false }
}

func PubDate(at time.Time) PostOption {
	return func(p *models.Post) { p.PubDate = at.UTC() }
}

func CreatedAt(at time.Time) PostOption {
	return func(p *models.Post) { p.CreatedAt = at.UTC() }
}

func CreatePost(t testing.TB, db *gorm.DB, author *models.User, category *models.Category, opts ...PostOption) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       gofakeit.Sentence(4),
		Text:        gofakeit.Paragraph(2, 3, 12, " "),
		PubDate:     time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
		IsPublished: true,
		AuthorID:    author.ID,
		CategoryID:  category.ID,
	}
	for _, opt := range opts {
		opt(post)
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func CreateComment(t testing.TB, db *gorm.DB, author *models.User, post *models.Post) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Text:     gofakeit.Sentence(10),
		AuthorID: author.ID,
		PostID:   post.ID,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}

func CountComments(t testing.TB, db *gorm.DB, postID uint) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&n).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	return n
}
