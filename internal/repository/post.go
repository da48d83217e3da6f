package repository

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// Post sort orders accepted by List.
const (
	PostSortNewest  = "newest"
	PostSortPopular = "popular"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	// GetByOwnerIDs returns all posts owned by any of the given users, with
	// like/comment counts attached. Order is unspecified; callers sort.
	GetByOwnerIDs(ctx context.Context, ownerIDs []uint, currentUserID uint) ([]*models.Post, error)
	List(ctx context.Context, sort string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// applySort appends the ORDER BY clause for the requested sort order.
// likes_count is a SELECT alias from applyPostDetails; both PostgreSQL and
// sqlite allow referencing it in ORDER BY within the same query level.
// The trailing id DESC keeps ordering deterministic across ties.
func applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case PostSortPopular:
		return db.Order("likes_count DESC, posts.id DESC")
	default: // PostSortNewest and anything unrecognized
		return db.Order("posts.created_at DESC, posts.id DESC")
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return storeErr(err)
	}
	cache.InvalidateNewestFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		if err := applyPostDetails(readDB(r.db).WithContext(ctx), currentUserID).
			Preload("User").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return storeErr(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		// Anonymous reads share one cache entry; authenticated reads carry a
		// per-user liked flag and bypass it.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyPostDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}

func (r *postRepository) GetByOwnerIDs(ctx context.Context, ownerIDs []uint, currentUserID uint) ([]*models.Post, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	err := applyPostDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id IN ?", ownerIDs).
		Find(&posts).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, sort string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	base := applyPostDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User")
	err := applySort(base, sort).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + strings.ToLower(query) + "%"
	err := applyPostDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return storeErr(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidateNewestFeed(ctx)
	return nil
}

// Delete removes the post and its engagement rows (likes, saves, comments) in
// one transaction so no dangling post ids are left in other users' sets.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return storeErr(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateNewestFeed(ctx)
	return nil
}
