// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"log/slog"

	"quotary/internal/cache"
	"quotary/internal/middleware"
	"quotary/internal/models"
	"quotary/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationRepository manages the user-to-entity engagement relations
// (follow, like, bookmark) together with the denormalized counter on
// the target entity. It is the only writer of those counter columns:
// every counter mutation happens in the same transaction as the join
// row mutation, which is what keeps counter == COUNT(rows) at all
// times.
type RelationRepository interface {
	// Toggle flips the relation for (userID, targetID) and returns the
	// resulting state plus the updated counter value.
	Toggle(ctx context.Context, kind models.RelationKind, userID, targetID uint) (bool, int64, error)
	// IsActive reports whether the relation row exists.
	IsActive(ctx context.Context, kind models.RelationKind, userID, targetID uint) (bool, error)
	// ActiveTargetIDs returns the subset of targetIDs the user has an
	// active relation with, in a single query.
	ActiveTargetIDs(ctx context.Context, kind models.RelationKind, userID uint, targetIDs []uint) ([]uint, error)
	// Count reads the denormalized counter for the target.
	Count(ctx context.Context, kind models.RelationKind, targetID uint) (int64, error)
	// ListTargetIDs returns target ids related to the user ordered by
	// relation creation time descending, plus the total relation count.
	ListTargetIDs(ctx context.Context, kind models.RelationKind, userID uint, limit, offset int) ([]uint, int64, error)
}

// relationSpec describes how one relation kind maps onto tables: which
// join table holds the rows, which column on it references the target,
// and which counter column on the target table mirrors the row count.
type relationSpec struct {
	joinTable     string
	targetColumn  string
	targetTable   string
	counterColumn string
	targetName    string
	newRow        func(userID, targetID uint) any
	rowModel      func() any
}

var relationSpecs = map[models.RelationKind]relationSpec{
	models.RelationFollow: {
		joinTable:     "follows",
		targetColumn:  "author_id",
		targetTable:   "authors",
		counterColumn: "followers",
		targetName:    "Author",
		newRow: func(userID, targetID uint) any {
			return &models.Follow{UserID: userID, AuthorID: targetID}
		},
		rowModel: func() any { return &models.Follow{} },
	},
	models.RelationLike: {
		joinTable:     "likes",
		targetColumn:  "quote_id",
		targetTable:   "quotes",
		counterColumn: "likes",
		targetName:    "Quote",
		newRow: func(userID, targetID uint) any {
			return &models.Like{UserID: userID, QuoteID: targetID}
		},
		rowModel: func() any { return &models.Like{} },
	},
	models.RelationBookmark: {
		joinTable:     "bookmarks",
		targetColumn:  "quote_id",
		targetTable:   "quotes",
		counterColumn: "bookmarks",
		targetName:    "Quote",
		newRow: func(userID, targetID uint) any {
			return &models.Bookmark{UserID: userID, QuoteID: targetID}
		},
		rowModel: func() any { return &models.Bookmark{} },
	},
}

// relationRepository implements RelationRepository
type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func specFor(kind models.RelationKind) (relationSpec, error) {
	spec, ok := relationSpecs[kind]
	if !ok {
		return relationSpec{}, models.NewValidationError("Unknown relation kind: " + string(kind))
	}
	return spec, nil
}

func (r *relationRepository) Toggle(ctx context.Context, kind models.RelationKind, userID, targetID uint) (bool, int64, error) {
	spec, err := specFor(kind)
	if err != nil {
		return false, 0, err
	}
	defer observability.TrackQuery("toggle", spec.joinTable)()

	var active bool
	var count int64

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var targets int64
		if err := tx.Table(spec.targetTable).
			Where("id = ? AND deleted_at IS NULL", targetID).
			Count(&targets).Error; err != nil {
			return err
		}
		if targets == 0 {
			return models.NewNotFoundError(spec.targetName, targetID)
		}

		var existing int64
		if err := tx.Table(spec.joinTable).
			Where("user_id = ? AND "+spec.targetColumn+" = ?", userID, targetID).
			Count(&existing).Error; err != nil {
			return err
		}

		if existing > 0 {
			res := tx.Where("user_id = ? AND "+spec.targetColumn+" = ?", userID, targetID).
				Delete(spec.rowModel())
			if res.Error != nil {
				return res.Error
			}
			// A concurrent toggle-off may have removed the row between
			// the count and the delete; only the delete that actually
			// removed it owns the decrement.
			if res.RowsAffected > 0 {
				if err := r.adjustCounter(tx, spec, targetID, -1); err != nil {
					return err
				}
			}
			active = false
		} else {
			// ON CONFLICT DO NOTHING keeps the transaction usable when a
			// concurrent toggle from the same user wins the insert race;
			// a unique violation would abort it on Postgres.
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(spec.newRow(userID, targetID))
			if res.Error != nil {
				return res.Error
			}
			// Zero rows means the concurrent winner already inserted and
			// owns the counter increment.
			if res.RowsAffected > 0 {
				if err := r.adjustCounter(tx, spec, targetID, +1); err != nil {
					return err
				}
			}
			active = true
		}

		return tx.Table(spec.targetTable).
			Select(spec.counterColumn).
			Where("id = ?", targetID).
			Scan(&count).Error
	})

	if txErr != nil {
		var appErr *models.AppError
		if errors.As(txErr, &appErr) {
			return false, 0, txErr
		}
		middleware.Logger.Error("relation toggle failed",
			slog.String("kind", string(kind)),
			slog.Uint64("user_id", uint64(userID)),
			slog.Uint64("target_id", uint64(targetID)),
			slog.String("error", txErr.Error()),
		)
		return false, 0, models.NewInternalError(txErr)
	}

	r.invalidateTarget(ctx, spec, targetID)
	return active, count, nil
}

// adjustCounter is the only place a counter column is ever written.
func (r *relationRepository) adjustCounter(tx *gorm.DB, spec relationSpec, targetID uint, delta int) error {
	return tx.Table(spec.targetTable).
		Where("id = ?", targetID).
		Update(spec.counterColumn, gorm.Expr(spec.counterColumn+" + ?", delta)).Error
}

func (r *relationRepository) invalidateTarget(ctx context.Context, spec relationSpec, targetID uint) {
	switch spec.targetTable {
	case "quotes":
		cache.InvalidateQuote(ctx, targetID)
		cache.InvalidateDailyQuote(ctx)
	case "authors":
		cache.InvalidateAuthor(ctx, targetID)
	}
}

func (r *relationRepository) IsActive(ctx context.Context, kind models.RelationKind, userID, targetID uint) (bool, error) {
	spec, err := specFor(kind)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Table(spec.joinTable).
		Where("user_id = ? AND "+spec.targetColumn+" = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *relationRepository) ActiveTargetIDs(ctx context.Context, kind models.RelationKind, userID uint, targetIDs []uint) ([]uint, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}
	if len(targetIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).Table(spec.joinTable).
		Where("user_id = ? AND "+spec.targetColumn+" IN ?", userID, targetIDs).
		Pluck(spec.targetColumn, &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *relationRepository) Count(ctx context.Context, kind models.RelationKind, targetID uint) (int64, error) {
	spec, err := specFor(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	res := r.db.WithContext(ctx).Table(spec.targetTable).
		Select(spec.counterColumn).
		Where("id = ? AND deleted_at IS NULL", targetID).
		Scan(&count)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFoundError(spec.targetName, targetID)
	}
	return count, nil
}

func (r *relationRepository) ListTargetIDs(ctx context.Context, kind models.RelationKind, userID uint, limit, offset int) ([]uint, int64, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Table(spec.joinTable).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Table(spec.joinTable).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck(spec.targetColumn, &ids).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ids, total, nil
}
