package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository defines persistence operations for likes and saved
// posts. Both are edge tables keyed by (user_id, post_id) with a composite
// unique index, so membership mutation is a single atomic statement.
type EngagementRepository interface {
	// AddLike inserts the like edge; reports false when it already existed.
	AddLike(ctx context.Context, userID, postID uint) (bool, error)
	// RemoveLike deletes the like edge; reports false when none existed.
	RemoveLike(ctx context.Context, userID, postID uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	CountLikes(ctx context.Context, postID uint) (int64, error)

	AddSave(ctx context.Context, userID, postID uint) (bool, error)
	RemoveSave(ctx context.Context, userID, postID uint) (bool, error)
	IsSaved(ctx context.Context, userID, postID uint) (bool, error)
	// GetSavedPosts resolves the user's saved-post set to post records, newest
	// save first. Saved ids whose post has been deleted are skipped, not errors.
	GetSavedPosts(ctx context.Context, userID uint) ([]*models.Post, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository returns a new EngagementRepository implementation.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) AddLike(ctx context.Context, userID, postID uint) (bool, error) {
	like := models.Like{UserID: userID, PostID: postID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, storeErr(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	return false, nil
}

func (r *engagementRepository) RemoveLike(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, storeErr(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	return false, nil
}

func (r *engagementRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (r *engagementRepository) AddSave(ctx context.Context, userID, postID uint) (bool, error) {
	save := models.SavedPost{UserID: userID, PostID: postID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&save)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, storeErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) RemoveSave(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{})
	if result.Error != nil {
		return false, storeErr(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) GetSavedPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	// Ordering follows the save edge, not the post, so the most recently saved
	// post comes first. The inner join silently drops edges whose post is gone.
	var posts []*models.Post
	if err := applyPostDetails(readDB(r.db).WithContext(ctx), userID).
		Preload("User").
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id AND saved_posts.user_id = ?", userID).
		Order("saved_posts.created_at DESC, saved_posts.id DESC").
		Find(&posts).Error; err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}
