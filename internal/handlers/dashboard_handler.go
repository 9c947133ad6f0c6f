package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hr-verification/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// HandleVerificationStats handles GET /dashboard/verifications
func (h *DashboardHandler) HandleVerificationStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.VerificationStats()
	if err != nil {
		log.Printf("verification dashboard error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load verification dashboard",
		})
	}

	return c.JSON(stats)
}
