package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rentwheels/service-rental/internal/application"
	"github.com/rentwheels/service-rental/internal/auth"
	"github.com/rentwheels/service-rental/internal/middleware"
	"github.com/rentwheels/service-rental/internal/response"
)

// VehicleHandler handles HTTP requests for the vehicle catalog.
type VehicleHandler struct {
	service *application.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(service *application.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// RegisterRoutes registers all vehicle routes on the given router group.
// Catalog reads are public; fleet mutations require an admin token.
func (h *VehicleHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
	}

	adminMW := []gin.HandlerFunc{middleware.Auth(jwtManager), middleware.RequireAdmin()}
	vehicles.POST("", append(adminMW, h.CreateVehicle)...)
	vehicles.PUT("/:id", append(adminMW, h.UpdateVehicle)...)
	vehicles.DELETE("/:id", append(adminMW, h.DeleteVehicle)...)
}

// ListVehicles handles GET /api/v1/vehicles with catalog filters.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	req := application.ListVehiclesRequest{
		VehicleType: c.Query("vehicleType"),
		Category:    c.Query("category"),
	}

	if v := c.Query("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(c, "minPrice must be a number")
			return
		}
		req.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(c, "maxPrice must be a number")
			return
		}
		req.MaxPrice = &p
	}
	if v := c.Query("isAvailable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "isAvailable must be a boolean")
			return
		}
		req.IsAvailable = &b
	}

	result, err := h.service.ListVehicles(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetVehicle handles GET /api/v1/vehicles/:id.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	result, err := h.service.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateVehicle handles POST /api/v1/vehicles (admin).
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req application.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateVehicle handles PUT /api/v1/vehicles/:id (admin).
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	var req application.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateVehicle(c.Request.Context(), vehicleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteVehicle handles DELETE /api/v1/vehicles/:id (admin).
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), vehicleID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
