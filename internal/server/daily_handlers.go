package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetDailyQuote handles GET /api/daily-quote. A new quote is selected
// lazily when the current selection has expired.
func (s *Server) GetDailyQuote(c *fiber.Ctx) error {
	selection, err := s.dailyService.GetCurrent(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(selection)
}

// GetDailyQuoteHistory handles GET /api/daily-quote/history
func (s *Server) GetDailyQuoteHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	history, err := s.dailyService.GetHistory(c.Context(), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"history": history})
}

// RotateDailyQuote handles POST /api/daily-quote/rotate (admin only)
func (s *Server) RotateDailyQuote(c *fiber.Ctx) error {
	selection, err := s.dailyService.Rotate(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishRotationEvent(selection)
	return c.JSON(selection)
}
