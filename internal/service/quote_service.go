package service

import (
	"context"
	"strings"

	"quotary/internal/models"
	"quotary/internal/repository"
)

const maxQuoteLength = 2000

// QuoteService provides quote business logic.
type QuoteService struct {
	quoteRepo  repository.QuoteRepository
	authorRepo repository.AuthorRepository
}

// NewQuoteService returns a new QuoteService.
func NewQuoteService(quoteRepo repository.QuoteRepository, authorRepo repository.AuthorRepository) *QuoteService {
	return &QuoteService{
		quoteRepo:  quoteRepo,
		authorRepo: authorRepo,
	}
}

// Create validates and stores a new quote submitted by a user.
func (s *QuoteService) Create(ctx context.Context, userID, authorID uint, text, category string) (*models.Quote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Quote text is required")
	}
	if len(text) > maxQuoteLength {
		return nil, models.NewValidationError("Quote text is too long")
	}

	if _, err := s.authorRepo.GetByID(ctx, authorID, 0); err != nil {
		return nil, err
	}

	quote := &models.Quote{
		Text:     text,
		Category: strings.TrimSpace(category),
		AuthorID: authorID,
		UserID:   userID,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	return s.quoteRepo.GetByID(ctx, quote.ID, userID)
}

// GetByID returns a quote with viewer-specific engagement flags resolved
// for currentUserID (0 for anonymous viewers).
func (s *QuoteService) GetByID(ctx context.Context, id, currentUserID uint) (*models.Quote, error) {
	return s.quoteRepo.GetByID(ctx, id, currentUserID)
}

// List returns a page of quotes, newest first.
func (s *QuoteService) List(ctx context.Context, page, limit int, currentUserID uint) ([]*models.Quote, error) {
	page, limit = normalizePagination(page, limit)
	return s.quoteRepo.List(ctx, limit, (page-1)*limit, currentUserID)
}

// ListByAuthor returns a page of an author's quotes, newest first.
func (s *QuoteService) ListByAuthor(ctx context.Context, authorID uint, page, limit int, currentUserID uint) ([]*models.Quote, error) {
	page, limit = normalizePagination(page, limit)

	if _, err := s.authorRepo.GetByID(ctx, authorID, 0); err != nil {
		return nil, err
	}
	return s.quoteRepo.GetByAuthorID(ctx, authorID, limit, (page-1)*limit, currentUserID)
}

// Delete removes a quote. Only the submitting user or an admin may delete.
func (s *QuoteService) Delete(ctx context.Context, id, userID uint, isAdmin bool) error {
	quote, err := s.quoteRepo.GetByID(ctx, id, 0)
	if err != nil {
		return err
	}
	if quote.UserID != userID && !isAdmin {
		return models.NewUnauthorizedError("You can only delete your own quotes")
	}
	return s.quoteRepo.Delete(ctx, id)
}
