package repository

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"quotary/internal/cache"
	"quotary/internal/middleware"
	"quotary/internal/models"
	"quotary/internal/observability"

	"gorm.io/gorm"
)

// DailyQuoteRepository manages the rotation selection rows. Selections
// are deactivated when superseded, never deleted: history feeds the
// no-repeat exclusion window.
type DailyQuoteRepository interface {
	// GetActive returns the active, unexpired selection or
	// gorm.ErrRecordNotFound-equivalent NotFound when none exists.
	GetActive(ctx context.Context, now time.Time) (*models.DailyQuote, error)
	// SelectNew deactivates any current selection and creates a new one
	// per the exclusion-window algorithm, all in one transaction.
	SelectNew(ctx context.Context, now, expiration time.Time, exclusionWindow time.Duration) (*models.DailyQuote, error)
	// History returns past selections ordered by selection date descending.
	History(ctx context.Context, limit int) ([]models.DailyQuote, error)
}

// dailyQuoteRepository implements DailyQuoteRepository
type dailyQuoteRepository struct {
	db *gorm.DB
}

// NewDailyQuoteRepository creates a new daily quote repository
func NewDailyQuoteRepository(db *gorm.DB) DailyQuoteRepository {
	return &dailyQuoteRepository{db: db}
}

func (r *dailyQuoteRepository) GetActive(ctx context.Context, now time.Time) (*models.DailyQuote, error) {
	var selection models.DailyQuote
	err := cache.Aside(ctx, cache.DailyQuoteKey, &selection, cache.DailyQuoteTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Quote").
			Preload("Quote.Author").
			Where("is_active = ? AND expiration_date > ?", true, now).
			First(&selection).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("DailyQuote", "active")
		}
		return nil, models.NewInternalError(err)
	}
	// A cached entry can outlive the rotation boundary within its TTL.
	if !selection.ExpirationDate.After(now) {
		cache.InvalidateDailyQuote(ctx)
		return nil, models.NewNotFoundError("DailyQuote", "active")
	}
	return &selection, nil
}

func (r *dailyQuoteRepository) SelectNew(ctx context.Context, now, expiration time.Time, exclusionWindow time.Duration) (*models.DailyQuote, error) {
	defer observability.TrackQuery("select_new", "daily_quotes")()

	var selection *models.DailyQuote

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Idempotent: safe when no row is active.
		if err := tx.Model(&models.DailyQuote{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		quoteID, err := r.pickQuote(tx, now.Add(-exclusionWindow))
		if err != nil {
			return err
		}

		selection = &models.DailyQuote{
			QuoteID:        quoteID,
			SelectionDate:  now,
			ExpirationDate: expiration,
			IsActive:       true,
		}
		return tx.Create(selection).Error
	})

	if txErr == nil {
		cache.InvalidateDailyQuote(ctx)
		if err := r.db.WithContext(ctx).
			Preload("Quote").
			Preload("Quote.Author").
			First(selection, selection.ID).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		return selection, nil
	}

	// A concurrent rotation beat us to the single-active index. The
	// winner's selection is the current one; return it instead.
	if errors.Is(txErr, gorm.ErrDuplicatedKey) {
		return r.GetActive(ctx, now)
	}

	var appErr *models.AppError
	if errors.As(txErr, &appErr) {
		return nil, txErr
	}
	middleware.Logger.Error("daily selection failed", slog.String("error", txErr.Error()))
	return nil, models.NewInternalError(txErr)
}

// pickQuote chooses the next featured quote: uniformly at random among
// quotes not selected since cutoff, falling back to the least recently
// selected quote when the exclusion window empties the pool.
func (r *dailyQuoteRepository) pickQuote(tx *gorm.DB, cutoff time.Time) (uint, error) {
	var excluded []uint
	if err := tx.Model(&models.DailyQuote{}).
		Where("selection_date >= ?", cutoff).
		Distinct().
		Pluck("quote_id", &excluded).Error; err != nil {
		return 0, err
	}

	eligible := tx.Model(&models.Quote{})
	if len(excluded) > 0 {
		eligible = eligible.Where("id NOT IN ?", excluded)
	}

	var poolSize int64
	if err := eligible.Count(&poolSize).Error; err != nil {
		return 0, err
	}

	if poolSize > 0 {
		var quoteID uint
		err := tx.Model(&models.Quote{}).
			Select("id").
			Scopes(func(db *gorm.DB) *gorm.DB {
				if len(excluded) > 0 {
					return db.Where("id NOT IN ?", excluded)
				}
				return db
			}).
			Order("id").
			Offset(rand.Intn(int(poolSize))).
			Limit(1).
			Scan(&quoteID).Error
		if err != nil {
			return 0, err
		}
		if quoteID != 0 {
			return quoteID, nil
		}
	}

	// Every quote was featured inside the window (or fewer quotes exist
	// than window days): least-recently-used fallback.
	var quoteID uint
	res := tx.Table("quotes").
		Select("quotes.id").
		Joins("LEFT JOIN (SELECT quote_id, MAX(selection_date) AS last_selected FROM daily_quotes GROUP BY quote_id) h ON h.quote_id = quotes.id").
		Where("quotes.deleted_at IS NULL").
		Order("CASE WHEN h.last_selected IS NULL THEN 0 ELSE 1 END, h.last_selected ASC").
		Limit(1).
		Scan(&quoteID)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 || quoteID == 0 {
		return 0, models.NewNotFoundError("Quote", "any")
	}
	return quoteID, nil
}

func (r *dailyQuoteRepository) History(ctx context.Context, limit int) ([]models.DailyQuote, error) {
	var history []models.DailyQuote
	if err := r.db.WithContext(ctx).
		Preload("Quote").
		Preload("Quote.Author").
		Order("selection_date DESC").
		Limit(limit).
		Find(&history).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return history, nil
}
