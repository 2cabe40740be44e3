package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rentwheels/service-rental/internal/application"
	"github.com/rentwheels/service-rental/internal/auth"
	"github.com/rentwheels/service-rental/internal/middleware"
	"github.com/rentwheels/service-rental/internal/response"
)

// AdminHandler exposes the admin dashboard endpoints.
type AdminHandler struct {
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// RegisterRoutes registers the admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/admin")
	admin.Use(middleware.Auth(jwtManager), middleware.RequireAdmin())
	{
		admin.GET("/stats/bookings", h.BookingStats)
	}
}

// BookingStats handles GET /api/v1/admin/stats/bookings.
func (h *AdminHandler) BookingStats(c *gin.Context) {
	result, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
