package posts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Ponloe/postboard/internal/apperrors"
)

// Store persists posts. Lookups return apperrors.NotFoundError for missing rows.
type Store interface {
	FindByID(ctx context.Context, id uint) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	Save(ctx context.Context, p *Post) error
	Delete(ctx context.Context, p *Post) error
	FindAllDesc(ctx context.Context) ([]Post, error)
	Transaction(ctx context.Context, fn func(Store) error) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*Post, error) {
	var p Post
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post", id)
		}
		return nil, apperrors.Persistence("find post", err)
	}
	return &p, nil
}

// FindBySlug returns the most recently modified post carrying slug.
func (s *GormStore) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	var p Post
	err := s.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("modified_at DESC").Order("id DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post", slug)
		}
		return nil, apperrors.Persistence("find post by slug", err)
	}
	return &p, nil
}

func (s *GormStore) Save(ctx context.Context, p *Post) error {
	return apperrors.Persistence("save post", s.db.WithContext(ctx).Save(p).Error)
}

func (s *GormStore) Delete(ctx context.Context, p *Post) error {
	return apperrors.Persistence("delete post", s.db.WithContext(ctx).Delete(p).Error)
}

func (s *GormStore) FindAllDesc(ctx context.Context) ([]Post, error) {
	var list []Post
	err := s.db.WithContext(ctx).
		Order("modified_at DESC").Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, apperrors.Persistence("list posts", err)
	}
	return list, nil
}

func (s *GormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
