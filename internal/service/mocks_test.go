package service

import (
	"context"
	"time"

	"quotary/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRelationRepo struct {
	mock.Mock
}

func (m *mockRelationRepo) Toggle(ctx context.Context, kind models.RelationKind, userID, targetID uint) (bool, int64, error) {
	args := m.Called(ctx, kind, userID, targetID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *mockRelationRepo) IsActive(ctx context.Context, kind models.RelationKind, userID, targetID uint) (bool, error) {
	args := m.Called(ctx, kind, userID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRelationRepo) ActiveTargetIDs(ctx context.Context, kind models.RelationKind, userID uint, targetIDs []uint) ([]uint, error) {
	args := m.Called(ctx, kind, userID, targetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *mockRelationRepo) Count(ctx context.Context, kind models.RelationKind, targetID uint) (int64, error) {
	args := m.Called(ctx, kind, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRelationRepo) ListTargetIDs(ctx context.Context, kind models.RelationKind, userID uint, limit, offset int) ([]uint, int64, error) {
	args := m.Called(ctx, kind, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]uint), args.Get(1).(int64), args.Error(2)
}

type mockAuthorRepo struct {
	mock.Mock
}

func (m *mockAuthorRepo) Create(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *mockAuthorRepo) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Author, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *mockAuthorRepo) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Author, error) {
	args := m.Called(ctx, ids, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Author), args.Error(1)
}

func (m *mockAuthorRepo) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Author, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Author), args.Error(1)
}

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) Create(ctx context.Context, quote *models.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *mockQuoteRepo) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Quote, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Quote, error) {
	args := m.Called(ctx, ids, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Quote, error) {
	args := m.Called(ctx, authorID, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Quote, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *mockQuoteRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockDailyRepo struct {
	mock.Mock
}

func (m *mockDailyRepo) GetActive(ctx context.Context, now time.Time) (*models.DailyQuote, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyQuote), args.Error(1)
}

func (m *mockDailyRepo) SelectNew(ctx context.Context, now, expiration time.Time, exclusionWindow time.Duration) (*models.DailyQuote, error) {
	args := m.Called(ctx, now, expiration, exclusionWindow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyQuote), args.Error(1)
}

func (m *mockDailyRepo) History(ctx context.Context, limit int) ([]models.DailyQuote, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyQuote), args.Error(1)
}
