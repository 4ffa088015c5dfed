package services

import (
	"context"
	"strings"

	"blogicum/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	user := &models.User{
		Email:     strings.TrimSpace(req.Email),
		Username:  strings.TrimSpace(req.Username),
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.checkUnique(ctx, 0, user.Username, user.Email); err != nil {
		return nil, err
	}

	if err := user.HashPassword(); err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "create user")
	}

	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidLogin
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "get user")
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFound(err, "get user by username")
	}
	return &user, nil
}

// UpdateProfile overwrites the profile fields of actor's own record.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, form *models.ProfileForm) (*models.User, error) {
	if actor == nil {
		return nil, ErrPermissionDenied
	}

	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)
	if err := s.checkUnique(ctx, actor.ID, username, email); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"username":   username,
		"email":      email,
	}

	user := models.User{ID: actor.ID}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	return s.GetUserByID(ctx, actor.ID)
}

func (s *UserService) checkUnique(ctx context.Context, selfID uint, username, email string) error {
	verr := &ValidationError{Fields: map[string]string{}}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, selfID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check username")
	}
	if count > 0 {
		verr.Fields["username"] = "A user with that username already exists."
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, selfID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check email")
	}
	if count > 0 {
		verr.Fields["email"] = "A user with that email already exists."
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
