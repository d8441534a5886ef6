package server

import (
	"quotary/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateQuote handles POST /api/quotes
func (s *Server) CreateQuote(c *fiber.Ctx) error {
	var req struct {
		Text     string `json:"text"`
		Category string `json:"category"`
		AuthorID uint   `json:"author_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	userID := c.Locals("userID").(uint)

	quote, err := s.quoteService.Create(c.Context(), userID, req.AuthorID, req.Text, req.Category)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// GetQuotes handles GET /api/quotes
func (s *Server) GetQuotes(c *fiber.Ctx) error {
	page, limit := parsePageQuery(c)
	viewerID, _ := s.optionalUserID(c)

	quotes, err := s.quoteService.List(c.Context(), page, limit, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"quotes": quotes})
}

// GetQuote handles GET /api/quotes/:id
func (s *Server) GetQuote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	quote, err := s.quoteService.GetByID(c.Context(), id, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(quote)
}

// DeleteQuote handles DELETE /api/quotes/:id
func (s *Server) DeleteQuote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	admin, err := s.isAdmin(c, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.quoteService.Delete(c.Context(), id, userID, admin); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/quotes/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	return s.toggleQuoteRelation(c, models.RelationLike)
}

// ToggleBookmark handles POST /api/quotes/:id/bookmark
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	return s.toggleQuoteRelation(c, models.RelationBookmark)
}

func (s *Server) toggleQuoteRelation(c *fiber.Ctx, kind models.RelationKind) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	result, err := s.engagementService.Toggle(c.Context(), kind, userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEngagementEvent(kind, id, result)
	return c.JSON(result)
}

// GetLikeStatus handles GET /api/quotes/:id/like
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	return s.quoteRelationStatus(c, models.RelationLike)
}

// GetBookmarkStatus handles GET /api/quotes/:id/bookmark
func (s *Server) GetBookmarkStatus(c *fiber.Ctx) error {
	return s.quoteRelationStatus(c, models.RelationBookmark)
}

func (s *Server) quoteRelationStatus(c *fiber.Ctx, kind models.RelationKind) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	active, err := s.engagementService.Status(c.Context(), kind, userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"active": active})
}

// BatchLikeStatus handles POST /api/quotes/like/status
func (s *Server) BatchLikeStatus(c *fiber.Ctx) error {
	return s.batchStatus(c, models.RelationLike)
}

// BatchBookmarkStatus handles POST /api/quotes/bookmark/status
func (s *Server) BatchBookmarkStatus(c *fiber.Ctx) error {
	return s.batchStatus(c, models.RelationBookmark)
}

// batchStatus resolves relation state for a list of target IDs in one query.
func (s *Server) batchStatus(c *fiber.Ctx, kind models.RelationKind) error {
	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	userID := c.Locals("userID").(uint)

	statuses, err := s.engagementService.BatchStatus(c.Context(), kind, userID, req.IDs)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"statuses": statuses})
}
