package services

import (
	"context"
	"fmt"

	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg"
	"github.com/akinalp/quickchat/repository"
)

// UserService covers the identity operations the chat needs: reading the
// current user, changing the preferred language and seeding users.
type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateLanguage(ctx context.Context, userID string, req *models.UpdateLanguageRequest) (*models.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	translation TranslationService
}

func NewUserService(userRepo repository.UserRepository, translation TranslationService) UserService {
	return &userService{
		userRepo:    userRepo,
		translation: translation,
	}
}

func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if !s.translation.IsLanguageSupported(ctx, req.PreferredLanguage) {
		return nil, fmt.Errorf("%w: unsupported language %q", pkg.ErrBadRequest, req.PreferredLanguage)
	}

	user := &models.User{
		FullName:          req.FullName,
		Email:             req.Email,
		Bio:               req.Bio,
		PreferredLanguage: req.PreferredLanguage,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) UpdateLanguage(ctx context.Context, userID string, req *models.UpdateLanguageRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if !s.translation.IsLanguageSupported(ctx, req.Language) {
		return nil, fmt.Errorf("%w: unsupported language %q", pkg.ErrBadRequest, req.Language)
	}

	if err := s.userRepo.UpdateLanguage(ctx, userID, req.Language); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
