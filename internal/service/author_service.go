package service

import (
	"context"
	"strings"

	"quotary/internal/models"
	"quotary/internal/repository"
)

// AuthorService provides author business logic.
type AuthorService struct {
	authorRepo repository.AuthorRepository
}

// NewAuthorService returns a new AuthorService.
func NewAuthorService(authorRepo repository.AuthorRepository) *AuthorService {
	return &AuthorService{authorRepo: authorRepo}
}

// Create validates and stores a new author.
func (s *AuthorService) Create(ctx context.Context, name, bio, era string) (*models.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Author name is required")
	}
	if len(name) > 200 {
		return nil, models.NewValidationError("Author name is too long")
	}

	author := &models.Author{
		Name: name,
		Bio:  strings.TrimSpace(bio),
		Era:  strings.TrimSpace(era),
	}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// GetByID returns an author with the viewer's follow flag resolved for
// currentUserID (0 for anonymous viewers).
func (s *AuthorService) GetByID(ctx context.Context, id, currentUserID uint) (*models.Author, error) {
	return s.authorRepo.GetByID(ctx, id, currentUserID)
}

// List returns a page of authors ordered by name.
func (s *AuthorService) List(ctx context.Context, page, limit int, currentUserID uint) ([]*models.Author, error) {
	page, limit = normalizePagination(page, limit)
	return s.authorRepo.List(ctx, limit, (page-1)*limit, currentUserID)
}
