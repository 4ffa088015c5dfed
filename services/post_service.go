package services

import (
	"context"
	"strings"
	"time"

	"blogicum/models"
	"blogicum/policy"
	"blogicum/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostService struct {
	db    *gorm.DB
	clock utils.Clock
}

func NewPostService(db *gorm.DB, clock utils.Clock) *PostService {
	return &PostService{db: db, clock: clock}
}

type PostPage struct {
	Posts []models.Post
	Page  utils.Page
}

func (s *PostService) Now() time.Time {
	return s.clock.NowUtc()
}

// ListVisible returns one page of publicly visible posts, newest pub_date
// first.
func (s *PostService) ListVisible(ctx context.Context, pageNumber, pageSize int) (*PostPage, error) {
	now := s.clock.NowUtc()
	return s.paginate(ctx, func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Post{}).Scopes(policy.VisibleAt(now))
	}, pageNumber, pageSize)
}

// ListVisibleInCategory is ListVisible restricted to category, which the
// caller has already checked is published.
func (s *PostService) ListVisibleInCategory(ctx context.Context, category *models.Category, pageNumber, pageSize int) (*PostPage, error) {
	now := s.clock.NowUtc()
	return s.paginate(ctx, func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Post{}).
			Scopes(policy.VisibleAt(now)).
			Where("posts.category_id = ?", category.ID)
	}, pageNumber, pageSize)
}

func (s *PostService) paginate(ctx context.Context, query func() *gorm.DB, pageNumber, pageSize int) (*PostPage, error) {
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count posts")
	}

	page, err := utils.NewPage(pageNumber, pageSize, total)
	if err != nil {
		return nil, ErrNotFound
	}

	var posts []models.Post
	err = query().
		Preload("Author").
		Preload("Category").
		Order("posts.pub_date DESC").
		Order("posts.id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}

	return &PostPage{Posts: posts, Page: page}, nil
}

func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		First(&post, id).Error
	if err != nil {
		return nil, notFound(err, "get post")
	}
	return &post, nil
}

// GetVisible returns ErrNotFound for a post that exists but is not publicly
// visible, whoever is asking.
func (s *PostService) GetVisible(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.IsVisible(post, s.clock.NowUtc()) {
		return nil, ErrNotFound
	}
	return post, nil
}

// ListByAuthor returns up to limit of the author's posts, newest created
// first, regardless of visibility.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list posts by author")
	}
	return posts, nil
}

func (s *PostService) Create(ctx context.Context, actor *models.User, form *models.PostForm) (*models.Post, error) {
	if actor == nil {
		return nil, ErrPermissionDenied
	}

	pubDate, err := s.validate(ctx, form)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       strings.TrimSpace(form.Title),
		Text:        form.Text,
		PubDate:     pubDate,
		IsPublished: form.IsPublished,
		AuthorID:    actor.ID,
		CategoryID:  form.CategoryID,
		CreatedAt:   s.clock.NowUtc(),
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, actor *models.User, post *models.Post, form *models.PostForm) error {
	if !policy.CanMutate(actor, post) {
		return ErrPermissionDenied
	}

	pubDate, err := s.validate(ctx, form)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"title":        strings.TrimSpace(form.Title),
		"text":         form.Text,
		"pub_date":     pubDate,
		"is_published": form.IsPublished,
		"category_id":  form.CategoryID,
	}
	if err := s.db.WithContext(ctx).Model(post).Updates(updates).Error; err != nil {
		return errors.Wrap(err, "update post")
	}
	return nil
}

// Delete removes post and its comments in one transaction.
func (s *PostService) Delete(ctx context.Context, actor *models.User, post *models.Post) error {
	if !policy.CanMutate(actor, post) {
		return ErrPermissionDenied
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return errors.Wrap(err, "delete comments")
		}
		if err := tx.Delete(&models.Post{}, post.ID).Error; err != nil {
			return errors.Wrap(err, "delete post")
		}
		return nil
	})
}

// validate checks the parts of a post form that binding tags cannot: the
// category must exist and pub_date, when given, must parse. An empty
// pub_date means now.
func (s *PostService) validate(ctx context.Context, form *models.PostForm) (time.Time, error) {
	verr := &ValidationError{Fields: map[string]string{}}

	pubDate := s.clock.NowUtc()
	if raw := strings.TrimSpace(form.PubDate); raw != "" {
		parsed, err := parsePubDate(raw)
		if err != nil {
			verr.Fields["pub_date"] = "Enter a valid date/time."
		} else {
			pubDate = parsed
		}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", form.CategoryID).Count(&count).Error; err != nil {
		return time.Time{}, errors.Wrap(err, "check category")
	}
	if count == 0 {
		verr.Fields["category"] = "Select a valid choice."
	}

	if len(verr.Fields) > 0 {
		return time.Time{}, verr
	}
	return pubDate, nil
}

func parsePubDate(raw string) (time.Time, error) {
	for _, layout := range []string{models.PubDateLayout, "2006-01-02T15:04:05", time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("unparseable pub_date %q", raw)
}
