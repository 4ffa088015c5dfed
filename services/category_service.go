package services

import (
	"context"

	"blogicum/models"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// GetPublishedBySlug returns ErrNotFound for unknown and unpublished
// categories alike.
func (s *CategoryService) GetPublishedBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", categorySlug, true).
		First(&category).Error
	if err != nil {
		return nil, notFound(err, "get category")
	}
	return &category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err, "get category by id")
	}
	return &category, nil
}

// ListAll feeds the post form's category choices.
func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("title ASC").Find(&categories).Error
	return categories, errors.Wrap(err, "list categories")
}

func (s *CategoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if req.Title == "" {
		return nil, NewValidationError("title", "This field is required.")
	}

	categorySlug := req.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(req.Title)
	}
	if !slug.IsSlug(categorySlug) {
		return nil, NewValidationError("slug", "Enter a valid slug of letters, numbers, underscores or hyphens.")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", categorySlug).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "check slug")
	}
	if count > 0 {
		return nil, NewValidationError("slug", "A category with this slug already exists.")
	}

	category := &models.Category{
		Slug:        categorySlug,
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, errors.Wrap(err, "create category")
	}
	return category, nil
}

func (s *CategoryService) SetPublished(ctx context.Context, categorySlug string, published bool) error {
	result := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("slug = ?", categorySlug).
		Update("is_published", published)
	if result.Error != nil {
		return errors.Wrap(result.Error, "set category published")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
