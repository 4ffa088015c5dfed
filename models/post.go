package models

import (
	"time"
)

type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:256;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	PubDate     time.Time `json:"pub_date" gorm:"not null;index"`
	IsPublished bool      `json:"is_published" gorm:"not null"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"`
	Author      User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Category    Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Comments    []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Post) OwnerID() uint {
	return p.AuthorID
}

// PubDateLayout matches the value format of an HTML datetime-local input.
const PubDateLayout = "2006-01-02T15:04"

// PostForm carries the only post fields a caller may set. Author is never
// taken from the request.
type PostForm struct {
	Title       string `form:"title" binding:"required,max=256"`
	Text        string `form:"text" binding:"required"`
	PubDate     string `form:"pub_date"`
	IsPublished bool   `form:"is_published"`
	CategoryID  uint   `form:"category" binding:"required"`
}

func PostFormFrom(p *Post) PostForm {
	return PostForm{
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate.Format(PubDateLayout),
		IsPublished: p.IsPublished,
		CategoryID:  p.CategoryID,
	}
}
