package services

import (
	"context"

	"blogicum/models"
	"blogicum/policy"
	"blogicum/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentService struct {
	db    *gorm.DB
	clock utils.Clock
}

func NewCommentService(db *gorm.DB, clock utils.Clock) *CommentService {
	return &CommentService{db: db, clock: clock}
}

func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	return comments, nil
}

// GetForPost finds a comment through its parent post; a comment that belongs
// to another post is ErrNotFound.
func (s *CommentService) GetForPost(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		return nil, notFound(err, "get comment")
	}
	return &comment, nil
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, post *models.Post, form *models.CommentForm) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrPermissionDenied
	}

	comment := &models.Comment{
		Text:      form.Text,
		AuthorID:  actor.ID,
		PostID:    post.ID,
		CreatedAt: s.clock.NowUtc(),
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, errors.Wrap(err, "create comment")
	}
	comment.Author = *actor
	return comment, nil
}

// UpdateText changes only the text column; author, post and created_at stay.
func (s *CommentService) UpdateText(ctx context.Context, actor *models.User, comment *models.Comment, form *models.CommentForm) error {
	if !policy.CanMutate(actor, comment) {
		return ErrPermissionDenied
	}

	if err := s.db.WithContext(ctx).Model(comment).Update("text", form.Text).Error; err != nil {
		return errors.Wrap(err, "update comment")
	}
	return nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, comment *models.Comment) error {
	if !policy.CanMutate(actor, comment) {
		return ErrPermissionDenied
	}

	result := s.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete comment")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
