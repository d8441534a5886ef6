package repository

import (
	"context"
	"errors"

	"quotary/internal/cache"
	"quotary/internal/models"

	"gorm.io/gorm"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Quote, error)
	GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Quote, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Quote, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Quote, error)
	Delete(ctx context.Context, id uint) error
}

// quoteRepository implements QuoteRepository
type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// applyViewerFlags adds per-viewer liked/bookmarked flags in the same query.
// The persisted likes/bookmarks counters need no subquery: the relation
// repository keeps them in sync with the join tables.
func (r *quoteRepository) applyViewerFlags(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("quotes.*, "+
			"EXISTS(SELECT 1 FROM likes WHERE likes.quote_id = quotes.id AND likes.user_id = ?) as liked, "+
			"EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.quote_id = quotes.id AND bookmarks.user_id = ?) as bookmarked",
			currentUserID, currentUserID)
	}
	return db.Select("quotes.*, false as liked, false as bookmarked")
}

func (r *quoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Quote, error) {
	var quote models.Quote

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.QuoteKey(id), &quote, cache.QuoteTTL, func() error {
			return r.applyViewerFlags(r.db.WithContext(ctx), 0).
				Preload("Author").
				First(&quote, id).Error
		})
	} else {
		err = r.applyViewerFlags(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			First(&quote, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Quote", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &quote, nil
}

func (r *quoteRepository) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Quote, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var quotes []*models.Quote
	if err := r.applyViewerFlags(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("quotes.id IN ?", ids).
		Find(&quotes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return quotes, nil
}

func (r *quoteRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Quote, error) {
	var quotes []*models.Quote
	if err := r.applyViewerFlags(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quotes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return quotes, nil
}

func (r *quoteRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Quote, error) {
	var quotes []*models.Quote
	if err := r.applyViewerFlags(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quotes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return quotes, nil
}

func (r *quoteRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Quote{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateQuote(ctx, id)
	return nil
}
