package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyFollowedAuthors handles GET /api/users/me/following
func (s *Server) GetMyFollowedAuthors(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePageQuery(c)

	result, err := s.engagementService.ListFollowedAuthors(c.Context(), userID, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetMyBookmarkedQuotes handles GET /api/users/me/bookmarks
func (s *Server) GetMyBookmarkedQuotes(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePageQuery(c)

	result, err := s.engagementService.ListBookmarkedQuotes(c.Context(), userID, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetMyLikedQuotes handles GET /api/users/me/likes
func (s *Server) GetMyLikedQuotes(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePageQuery(c)

	result, err := s.engagementService.ListLikedQuotes(c.Context(), userID, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
