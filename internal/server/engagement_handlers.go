package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/posts/:id/like
// The endpoint always toggles: liking twice means like then unlike.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	result, err := s.engagementService.ToggleLike(c.Context(), postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Return the updated post so clients can refresh counts in place.
	post, err := s.postService.GetPost(c.Context(), postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"result": result,
		"post":   post,
	})
}

// SavePost handles POST /api/posts/:id/save
func (s *Server) SavePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.engagementService.SavePost(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"result": result,
	})
}

// UnsavePost handles DELETE /api/posts/:id/save
func (s *Server) UnsavePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.UnsavePost(c.Context(), postID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"result": "unsaved",
	})
}

// GetSavedPosts handles GET /api/users/me/saved
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	posts, err := s.engagementService.ListSavedPosts(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
