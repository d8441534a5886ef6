package repository

import (
	"context"
	"errors"

	"quotary/internal/cache"
	"quotary/internal/models"

	"gorm.io/gorm"
)

// AuthorRepository defines the interface for author data operations
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Author, error)
	GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Author, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Author, error)
}

// authorRepository implements AuthorRepository
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) applyViewerFlags(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("authors.*, "+
			"EXISTS(SELECT 1 FROM follows WHERE follows.author_id = authors.id AND follows.user_id = ?) as following",
			currentUserID)
	}
	return db.Select("authors.*, false as following")
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Author already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Author, error) {
	var author models.Author

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.AuthorKey(id), &author, cache.AuthorTTL, func() error {
			return r.applyViewerFlags(r.db.WithContext(ctx), 0).First(&author, id).Error
		})
	} else {
		err = r.applyViewerFlags(r.db.WithContext(ctx), currentUserID).First(&author, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &author, nil
}

func (r *authorRepository) GetByIDs(ctx context.Context, ids []uint, currentUserID uint) ([]*models.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var authors []*models.Author
	if err := r.applyViewerFlags(r.db.WithContext(ctx), currentUserID).
		Where("authors.id IN ?", ids).
		Find(&authors).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return authors, nil
}

func (r *authorRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Author, error) {
	var authors []*models.Author
	if err := r.applyViewerFlags(r.db.WithContext(ctx), currentUserID).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return authors, nil
}
