package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pulseline-app/backend/internal/apperrors"
	"github.com/pulseline-app/backend/internal/models"
	"github.com/pulseline-app/backend/pkg/slug"
)

// TagRepository defines the interface for tag operations
type TagRepository interface {
	FindOrCreate(name string) (*models.Tag, error)
	GetBySlug(s string) (*models.Tag, error)
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// FindOrCreate looks a tag up by its normalized slug, creating it on first
// use. A racing insert loses to the unique slug index and falls back to the
// winner's row.
func (r *PostgresTagRepository) FindOrCreate(name string) (*models.Tag, error) {
	s := slug.Generate(name)
	if s == "" {
		return nil, apperrors.Validation("tag name must contain at least one alphanumeric character")
	}

	var tag models.Tag
	err := r.db.Where("slug = ?", s).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name, Slug: s}
	if err := r.db.Create(&tag).Error; err != nil {
		if isUniqueViolation(err) {
			var existing models.Tag
			if err := r.db.Where("slug = ?", s).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *PostgresTagRepository) GetBySlug(s string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("slug = ?", s).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag not found")
		}
		return nil, err
	}
	return &tag, nil
}
