package server

import (
	"quotary/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateAuthor handles POST /api/authors (admin only)
func (s *Server) CreateAuthor(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
		Era  string `json:"era"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.authorService.Create(c.Context(), req.Name, req.Bio, req.Era)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(author)
}

// GetAuthors handles GET /api/authors
func (s *Server) GetAuthors(c *fiber.Ctx) error {
	page, limit := parsePageQuery(c)
	viewerID, _ := s.optionalUserID(c)

	authors, err := s.authorService.List(c.Context(), page, limit, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"authors": authors})
}

// GetAuthor handles GET /api/authors/:id
func (s *Server) GetAuthor(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	author, err := s.authorService.GetByID(c.Context(), id, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(author)
}

// GetAuthorQuotes handles GET /api/authors/:id/quotes
func (s *Server) GetAuthorQuotes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, limit := parsePageQuery(c)
	viewerID, _ := s.optionalUserID(c)

	quotes, err := s.quoteService.ListByAuthor(c.Context(), id, page, limit, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"quotes": quotes})
}

// ToggleFollow handles POST /api/authors/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	result, err := s.engagementService.Toggle(c.Context(), models.RelationFollow, userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEngagementEvent(models.RelationFollow, id, result)
	return c.JSON(result)
}

// GetFollowStatus handles GET /api/authors/:id/follow
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	active, err := s.engagementService.Status(c.Context(), models.RelationFollow, userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"active": active})
}

// BatchFollowStatus handles POST /api/authors/follow/status
func (s *Server) BatchFollowStatus(c *fiber.Ctx) error {
	return s.batchStatus(c, models.RelationFollow)
}
