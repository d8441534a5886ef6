package service

import (
	"context"
	"time"

	"quotary/internal/models"
	"quotary/internal/observability"
	"quotary/internal/repository"
)

const (
	// rotationOffset shifts the rotation boundary so a new quote appears
	// at local midnight in the product's home timezone (UTC+4) rather
	// than at midnight UTC.
	rotationOffset = 4 * time.Hour

	defaultHistoryLimit = 30
	maxHistoryLimit     = 100
)

// DailyQuoteService selects and serves the featured quote of the day.
// Rotation is lazy: the first request after the boundary triggers a new
// selection, there is no scheduler.
type DailyQuoteService struct {
	dailyRepo     repository.DailyQuoteRepository
	exclusionDays int
	now           func() time.Time
}

// NewDailyQuoteService returns a new DailyQuoteService. exclusionDays is
// how long a quote stays ineligible after being featured.
func NewDailyQuoteService(dailyRepo repository.DailyQuoteRepository, exclusionDays int) *DailyQuoteService {
	if exclusionDays <= 0 {
		exclusionDays = 30
	}
	return &DailyQuoteService{
		dailyRepo:     dailyRepo,
		exclusionDays: exclusionDays,
		now:           time.Now,
	}
}

// GetCurrent returns the active daily quote, selecting a new one when the
// current selection is missing or expired.
func (s *DailyQuoteService) GetCurrent(ctx context.Context) (*models.DailyQuote, error) {
	now := s.now()

	selection, err := s.dailyRepo.GetActive(ctx, now)
	if err == nil {
		return selection, nil
	}
	if !models.IsNotFound(err) {
		return nil, err
	}

	observability.DailyRotations.WithLabelValues("lazy").Inc()
	return s.selectNew(ctx, now)
}

// Rotate forces selection of a new daily quote regardless of the current
// selection's expiration.
func (s *DailyQuoteService) Rotate(ctx context.Context) (*models.DailyQuote, error) {
	observability.DailyRotations.WithLabelValues("forced").Inc()
	return s.selectNew(ctx, s.now())
}

func (s *DailyQuoteService) selectNew(ctx context.Context, now time.Time) (*models.DailyQuote, error) {
	window := time.Duration(s.exclusionDays) * 24 * time.Hour
	return s.dailyRepo.SelectNew(ctx, now, NextRotationBoundary(now), window)
}

// GetHistory returns past daily selections, most recent first.
func (s *DailyQuoteService) GetHistory(ctx context.Context, limit int) ([]models.DailyQuote, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.dailyRepo.History(ctx, limit)
}

// NextRotationBoundary returns the expiration for a selection made at now:
// the next midnight in now's location, shifted back by the rotation offset.
func NextRotationBoundary(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	midnight := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
	return midnight.Add(-rotationOffset)
}
