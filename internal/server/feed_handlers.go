package server

import (
	"ripple/internal/cache"

	"github.com/gofiber/fiber/v2"
)

// GetFollowingFeed handles GET /api/feed
// Returns the viewer's own posts merged with posts of users they follow,
// newest first.
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.FollowingFeed(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetNewestFeed handles GET /api/feed/newest
func (s *Server) GetNewestFeed(c *fiber.Ctx) error {
	page := parsePagination(c, cache.NewestFeedLimit)
	userID, _ := s.optionalUserID(c)

	posts, err := s.feedService.NewestFeed(c.Context(), page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPopularFeed handles GET /api/feed/popular
func (s *Server) GetPopularFeed(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.feedService.PopularFeed(c.Context(), page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
