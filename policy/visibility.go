// Package policy holds the two rules every handler shares: which posts the
// public may see, and who may change a post or comment.
package policy

import (
	"time"

	"blogicum/models"

	"gorm.io/gorm"
)

// IsVisible reports whether post may be listed and shown publicly at now.
// The post's Category must be loaded; a zero Category is unpublished.
func IsVisible(post *models.Post, now time.Time) bool {
	if post == nil {
		return false
	}
	return post.IsPublished &&
		post.Category.IsPublished &&
		!post.PubDate.After(now)
}

// VisibleAt is the query form of IsVisible, for use with db.Scopes on the
// posts table.
func VisibleAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		published := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Category{}).
			Select("id").
			Where("is_published = ?", true)

		return db.
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IN (?)", published)
	}
}
