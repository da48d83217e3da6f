package service

import (
	"context"
	"sort"

	"ripple/internal/cache"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// FeedService composes read-only post feeds. Feeds are assembled at read
// time from the follow graph and live engagement counts; nothing is
// precomputed or fanned out on write.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

// sortPosts orders posts newest first. Ties on the creation instant fall
// back to the larger id, so the ordering is deterministic.
func sortPosts(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// FollowingFeed returns the user's own posts merged with posts of everyone
// they follow, newest first.
func (s *FeedService) FollowingFeed(ctx context.Context, userID uint) ([]*models.Post, error) {
	middleware.FeedRequests.WithLabelValues("following").Inc()

	ownerIDs, err := s.followRepo.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ownerIDs = append(ownerIDs, userID)

	posts, err := s.postRepo.GetByOwnerIDs(ctx, ownerIDs, userID)
	if err != nil {
		return nil, err
	}

	sortPosts(posts)
	return posts, nil
}

// NewestFeed returns all posts, newest first. The anonymous default first
// page is served cache-aside; authenticated requests carry a per-user liked
// flag and go straight to the store, as do non-default limits (the cache key
// holds exactly one page shape).
func (s *FeedService) NewestFeed(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	middleware.FeedRequests.WithLabelValues("newest").Inc()

	if currentUserID == 0 && offset == 0 && limit == cache.NewestFeedLimit {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.NewestFeedKey, &posts, cache.NewestFeedTTL, func() error {
			var ferr error
			posts, ferr = s.postRepo.List(ctx, repository.PostSortNewest, limit, 0, 0)
			return ferr
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	return s.postRepo.List(ctx, repository.PostSortNewest, limit, offset, currentUserID)
}

// PopularFeed returns all posts ordered by current like count. Popularity is
// read live from the likes table, so an unlike demotes the post immediately.
func (s *FeedService) PopularFeed(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	middleware.FeedRequests.WithLabelValues("popular").Inc()

	return s.postRepo.List(ctx, repository.PostSortPopular, limit, offset, currentUserID)
}
