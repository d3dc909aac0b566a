// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"encoding/json"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows a listing to posts carrying a tag and/or owned by a
// username. Zero-value fields are ignored; provided fields are conjunctive.
type PostFilter struct {
	Tag      string
	Username string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("User").
			First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applyFilter appends WHERE clauses for the provided filter fields.
// Tag matching uses jsonb containment against the tags column; username
// matching joins the owning user.
func (r *postRepository) applyFilter(db *gorm.DB, f PostFilter) *gorm.DB {
	if f.Tag != "" {
		tagJSON, _ := json.Marshal(models.Tags{f.Tag})
		db = db.Where("posts.tags @> ?", string(tagJSON))
	}
	if f.Username != "" {
		db = db.
			Joins("JOIN users ON users.id = posts.user_id").
			Where("users.username = ?", f.Username)
	}
	return db
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error) {
	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	listQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter)
	err := listQuery.
		Preload("User").
		Order("posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// The post usually arrives with its owner preloaded; never write the
	// users row from here.
	if err := r.db.WithContext(ctx).Omit("User").Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
