package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentwheels/service-rental/internal/domain"
	vehicleDomain "github.com/rentwheels/service-rental/internal/domain/vehicle"
)

// CreateVehicleRequest is the request DTO for adding a vehicle to the fleet.
type CreateVehicleRequest struct {
	Name        string               `json:"name" binding:"required"`
	VehicleType string               `json:"vehicle_type" binding:"required"`
	Category    string               `json:"category"`
	Brand       string               `json:"brand" binding:"required"`
	RentPerDay  float64              `json:"rent_per_day" binding:"required"`
	ImageURL    string               `json:"image_url"`
	Specs       *vehicleDomain.Specs `json:"specs"`
}

// UpdateVehicleRequest is the request DTO for partially updating a vehicle.
// Absent fields keep their stored value.
type UpdateVehicleRequest struct {
	Name        string               `json:"name"`
	VehicleType string               `json:"vehicle_type"`
	Category    string               `json:"category"`
	Brand       string               `json:"brand"`
	RentPerDay  float64              `json:"rent_per_day"`
	ImageURL    string               `json:"image_url"`
	IsAvailable *bool                `json:"is_available"`
	Specs       *vehicleDomain.Specs `json:"specs"`
}

// ListVehiclesRequest carries the catalog filter parameters.
type ListVehiclesRequest struct {
	VehicleType string
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
}

// VehicleDTO is the API response representation of a vehicle.
type VehicleDTO struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	VehicleType string              `json:"vehicle_type"`
	Category    string              `json:"category"`
	Brand       string              `json:"brand"`
	RentPerDay  float64             `json:"rent_per_day"`
	ImageURL    string              `json:"image_url,omitempty"`
	IsAvailable bool                `json:"is_available"`
	Specs       vehicleDomain.Specs `json:"specs"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// VehicleService implements use cases for fleet inventory management.
type VehicleService struct {
	repo   vehicleDomain.Repository
	logger *zap.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(repo vehicleDomain.Repository, logger *zap.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

// CreateVehicle adds a new vehicle to the fleet (admin).
func (s *VehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*VehicleDTO, error) {
	var specs vehicleDomain.Specs
	if req.Specs != nil {
		specs = *req.Specs
	}

	vehicle, err := vehicleDomain.NewVehicle(
		req.Name,
		vehicleDomain.Type(req.VehicleType),
		vehicleDomain.Category(req.Category),
		req.Brand,
		req.RentPerDay,
		req.ImageURL,
		specs,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, vehicle); err != nil {
		s.logger.Error("failed to create vehicle", zap.Error(err))
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("vehicle added to fleet",
		zap.String("vehicle_id", vehicle.ID().String()),
		zap.String("name", vehicle.Name()),
	)
	result := toVehicleDTO(vehicle)
	return &result, nil
}

// GetVehicle returns a single vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*VehicleDTO, error) {
	vehicle, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	result := toVehicleDTO(vehicle)
	return &result, nil
}

// ListVehicles returns the vehicle catalog filtered by type, category, price
// range, and availability. A category of "all" matches everything.
func (s *VehicleService) ListVehicles(ctx context.Context, req ListVehiclesRequest) ([]VehicleDTO, error) {
	var filter vehicleDomain.Filter

	if req.VehicleType != "" {
		t := vehicleDomain.Type(req.VehicleType)
		if !t.IsValid() {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid vehicle type: %s", req.VehicleType))
		}
		filter.VehicleType = &t
	}
	if req.Category != "" && req.Category != string(vehicleDomain.CategoryAll) {
		c := vehicleDomain.Category(req.Category)
		if !c.IsValid() {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid category: %s", req.Category))
		}
		filter.Category = &c
	}
	filter.MinPrice = req.MinPrice
	filter.MaxPrice = req.MaxPrice
	filter.IsAvailable = req.IsAvailable

	vehicles, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = toVehicleDTO(v)
	}
	return dtos, nil
}

// UpdateVehicle applies a partial update to a vehicle (admin).
func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicleID uuid.UUID, req UpdateVehicleRequest) (*VehicleDTO, error) {
	vehicle, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if err := vehicle.Update(
		req.Name,
		vehicleDomain.Type(req.VehicleType),
		vehicleDomain.Category(req.Category),
		req.Brand,
		req.RentPerDay,
		req.ImageURL,
		req.IsAvailable,
		req.Specs,
	); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	result := toVehicleDTO(vehicle)
	return &result, nil
}

// DeleteVehicle removes a vehicle from the fleet (admin). Existing bookings
// that reference the vehicle are left untouched.
func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	if err := s.repo.Delete(ctx, vehicleID); err != nil {
		return err
	}
	s.logger.Info("vehicle removed from fleet", zap.String("vehicle_id", vehicleID.String()))
	return nil
}

func toVehicleDTO(v *vehicleDomain.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          v.ID(),
		Name:        v.Name(),
		VehicleType: string(v.VehicleType()),
		Category:    string(v.Category()),
		Brand:       v.Brand(),
		RentPerDay:  v.RentPerDay(),
		ImageURL:    v.ImageURL(),
		IsAvailable: v.IsAvailable(),
		Specs:       v.Specs(),
		CreatedAt:   v.CreatedAt(),
		UpdatedAt:   v.UpdatedAt(),
	}
}
