package service

import (
	"context"
	"strconv"

	"quotary/internal/models"
	"quotary/internal/observability"
	"quotary/internal/repository"
)

// Pagination limits for engagement listings.
const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// ToggleResult reports the state of a relation after a toggle.
type ToggleResult struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

// Page describes the slice of a listing that was returned.
type Page struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// AuthorPage is one page of authors plus pagination info.
type AuthorPage struct {
	Authors    []*models.Author `json:"authors"`
	Pagination Page             `json:"pagination"`
}

// QuotePage is one page of quotes plus pagination info.
type QuotePage struct {
	Quotes     []*models.Quote `json:"quotes"`
	Pagination Page            `json:"pagination"`
}

// EngagementService provides follow, like and bookmark business logic.
type EngagementService struct {
	relationRepo repository.RelationRepository
	authorRepo   repository.AuthorRepository
	quoteRepo    repository.QuoteRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(
	relationRepo repository.RelationRepository,
	authorRepo repository.AuthorRepository,
	quoteRepo repository.QuoteRepository,
) *EngagementService {
	return &EngagementService{
		relationRepo: relationRepo,
		authorRepo:   authorRepo,
		quoteRepo:    quoteRepo,
	}
}

// Toggle flips the relation between a user and a target and returns the
// resulting state together with the target's fresh counter value.
func (s *EngagementService) Toggle(ctx context.Context, kind models.RelationKind, userID, targetID uint) (*ToggleResult, error) {
	if !kind.Valid() {
		return nil, models.NewValidationError("Unknown relation kind: " + string(kind))
	}

	active, count, err := s.relationRepo.Toggle(ctx, kind, userID, targetID)
	if err != nil {
		return nil, err
	}

	observability.EngagementToggles.WithLabelValues(string(kind), strconv.FormatBool(active)).Inc()

	return &ToggleResult{Active: active, Count: count}, nil
}

// Status reports whether the relation between a user and a target is active.
func (s *EngagementService) Status(ctx context.Context, kind models.RelationKind, userID, targetID uint) (bool, error) {
	if !kind.Valid() {
		return false, models.NewValidationError("Unknown relation kind: " + string(kind))
	}
	return s.relationRepo.IsActive(ctx, kind, userID, targetID)
}

// BatchStatus reports relation state for many targets in a single query.
// The result contains an entry for every requested ID, including unknown
// ones, which are reported as inactive.
func (s *EngagementService) BatchStatus(ctx context.Context, kind models.RelationKind, userID uint, targetIDs []uint) (map[uint]bool, error) {
	if !kind.Valid() {
		return nil, models.NewValidationError("Unknown relation kind: " + string(kind))
	}
	if len(targetIDs) == 0 {
		return map[uint]bool{}, nil
	}
	if len(targetIDs) > 100 {
		return nil, models.NewValidationError("Too many IDs requested, maximum is 100")
	}

	result := make(map[uint]bool, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = false
	}

	activeIDs, err := s.relationRepo.ActiveTargetIDs(ctx, kind, userID, targetIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range activeIDs {
		result[id] = true
	}

	return result, nil
}

// Count returns the number of active relations pointing at a target.
func (s *EngagementService) Count(ctx context.Context, kind models.RelationKind, targetID uint) (int64, error) {
	if !kind.Valid() {
		return 0, models.NewValidationError("Unknown relation kind: " + string(kind))
	}
	return s.relationRepo.Count(ctx, kind, targetID)
}

// ListFollowedAuthors returns the authors a user follows, most recently
// followed first.
func (s *EngagementService) ListFollowedAuthors(ctx context.Context, userID uint, page, limit int) (*AuthorPage, error) {
	page, limit = normalizePagination(page, limit)

	ids, total, err := s.relationRepo.ListTargetIDs(ctx, models.RelationFollow, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	authors, err := s.authorRepo.GetByIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	authors = orderAuthorsByIDs(authors, ids)

	return &AuthorPage{
		Authors:    authors,
		Pagination: buildPage(page, limit, total, len(authors)),
	}, nil
}

// ListBookmarkedQuotes returns the quotes a user has bookmarked, most
// recently bookmarked first.
func (s *EngagementService) ListBookmarkedQuotes(ctx context.Context, userID uint, page, limit int) (*QuotePage, error) {
	page, limit = normalizePagination(page, limit)

	ids, total, err := s.relationRepo.ListTargetIDs(ctx, models.RelationBookmark, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.GetByIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	quotes = orderQuotesByIDs(quotes, ids)

	return &QuotePage{
		Quotes:     quotes,
		Pagination: buildPage(page, limit, total, len(quotes)),
	}, nil
}

// ListLikedQuotes returns the quotes a user has liked, most recently liked
// first.
func (s *EngagementService) ListLikedQuotes(ctx context.Context, userID uint, page, limit int) (*QuotePage, error) {
	page, limit = normalizePagination(page, limit)

	ids, total, err := s.relationRepo.ListTargetIDs(ctx, models.RelationLike, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.GetByIDs(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	quotes = orderQuotesByIDs(quotes, ids)

	return &QuotePage{
		Quotes:     quotes,
		Pagination: buildPage(page, limit, total, len(quotes)),
	}, nil
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func buildPage(page, limit int, total int64, returned int) Page {
	return Page{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: total > int64((page-1)*limit+returned),
	}
}

// orderAuthorsByIDs restores the relation ordering that a batched lookup
// does not preserve.
func orderAuthorsByIDs(authors []*models.Author, ids []uint) []*models.Author {
	byID := make(map[uint]*models.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	ordered := make([]*models.Author, 0, len(authors))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered
}

func orderQuotesByIDs(quotes []*models.Quote, ids []uint) []*models.Quote {
	byID := make(map[uint]*models.Quote, len(quotes))
	for _, q := range quotes {
		byID[q.ID] = q
	}
	ordered := make([]*models.Quote, 0, len(quotes))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered
}
