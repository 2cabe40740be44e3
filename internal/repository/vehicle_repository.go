package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentwheels/service-rental/internal/domain"
	vehicleDomain "github.com/rentwheels/service-rental/internal/domain/vehicle"
)

// VehicleModel is the GORM model for the vehicles table.
type VehicleModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null;size:200"`
	VehicleType  string    `gorm:"not null;size:10;index"`
	Category     string    `gorm:"not null;size:20;index"`
	Brand        string    `gorm:"not null;size:100"`
	RentPerDay   float64   `gorm:"not null"`
	ImageURL     string    `gorm:"size:500"`
	IsAvailable  bool      `gorm:"not null;default:true;index"`
	MaxSpeed     int       `gorm:""`
	Mileage      float64   `gorm:""`
	SeatCapacity int       `gorm:""`
	FuelType     string    `gorm:"size:20"`
	Transmission string    `gorm:"size:20"`
	Engine       string    `gorm:"size:100"`
	Year         int       `gorm:""`
	Color        string    `gorm:"size:50"`
	Version      int64     `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// GormVehicleRepository is the GORM-based implementation of the vehicle repository.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID retrieves a vehicle by its unique identifier.
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*vehicleDomain.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Vehicle", id.String())
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return toDomainVehicle(&model), nil
}

// List retrieves vehicles matching the filter, newest first.
func (r *GormVehicleRepository) List(ctx context.Context, filter vehicleDomain.Filter) ([]*vehicleDomain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&VehicleModel{})

	if filter.VehicleType != nil {
		q = q.Where("vehicle_type = ?", string(*filter.VehicleType))
	}
	if filter.Category != nil {
		q = q.Where("category = ?", string(*filter.Category))
	}
	if filter.MinPrice != nil {
		q = q.Where("rent_per_day >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("rent_per_day <= ?", *filter.MaxPrice)
	}
	if filter.IsAvailable != nil {
		q = q.Where("is_available = ?", *filter.IsAvailable)
	}

	var models []VehicleModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]*vehicleDomain.Vehicle, len(models))
	for i, m := range models {
		vehicles[i] = toDomainVehicle(&m)
	}
	return vehicles, nil
}

// Save persists a new vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, v *vehicleDomain.Vehicle) error {
	model := toVehicleModel(v)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

// Update persists changes to an existing vehicle with optimistic locking.
func (r *GormVehicleRepository) Update(ctx context.Context, v *vehicleDomain.Vehicle) error {
	model := toVehicleModel(v)

	expectedVersion := v.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"vehicle_type":  model.VehicleType,
			"category":      model.Category,
			"brand":         model.Brand,
			"rent_per_day":  model.RentPerDay,
			"image_url":     model.ImageURL,
			"is_available":  model.IsAvailable,
			"max_speed":     model.MaxSpeed,
			"mileage":       model.Mileage,
			"seat_capacity": model.SeatCapacity,
			"fuel_type":     model.FuelType,
			"transmission":  model.Transmission,
			"engine":        model.Engine,
			"year":          model.Year,
			"color":         model.Color,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("vehicle was modified by another transaction")
	}
	return nil
}

// Delete removes a vehicle. Bookings referencing it are deliberately left in
// place, matching the original system's no-cascade behavior.
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&VehicleModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Vehicle", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toVehicleModel(v *vehicleDomain.Vehicle) *VehicleModel {
	specs := v.Specs()
	return &VehicleModel{
		ID:           v.ID(),
		Name:         v.Name(),
		VehicleType:  string(v.VehicleType()),
		Category:     string(v.Category()),
		Brand:        v.Brand(),
		RentPerDay:   v.RentPerDay(),
		ImageURL:     v.ImageURL(),
		IsAvailable:  v.IsAvailable(),
		MaxSpeed:     specs.MaxSpeed,
		Mileage:      specs.Mileage,
		SeatCapacity: specs.SeatCapacity,
		FuelType:     string(specs.FuelType),
		Transmission: string(specs.Transmission),
		Engine:       specs.Engine,
		Year:         specs.Year,
		Color:        specs.Color,
		Version:      v.Version(),
		CreatedAt:    v.CreatedAt(),
		UpdatedAt:    v.UpdatedAt(),
	}
}

func toDomainVehicle(m *VehicleModel) *vehicleDomain.Vehicle {
	specs := vehicleDomain.Specs{
		MaxSpeed:     m.MaxSpeed,
		Mileage:      m.Mileage,
		SeatCapacity: m.SeatCapacity,
		FuelType:     vehicleDomain.FuelType(m.FuelType),
		Transmission: vehicleDomain.Transmission(m.Transmission),
		Engine:       m.Engine,
		Year:         m.Year,
		Color:        m.Color,
	}
	return vehicleDomain.Reconstruct(
		m.ID,
		m.Name,
		vehicleDomain.Type(m.VehicleType),
		vehicleDomain.Category(m.Category),
		m.Brand,
		m.RentPerDay,
		m.ImageURL,
		m.IsAvailable,
		specs,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
