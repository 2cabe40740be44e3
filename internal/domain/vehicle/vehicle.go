package vehicle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentwheels/service-rental/internal/domain"
)

// Type represents the kind of vehicle offered for rent.
type Type string

const (
	TypeCar  Type = "car"
	TypeBike Type = "bike"
)

// IsValid returns true if the vehicle type is recognized.
func (t Type) IsValid() bool {
	return t == TypeCar || t == TypeBike
}

// Category represents the marketing tier of a vehicle.
type Category string

const (
	CategoryStandard    Category = "standard"
	CategoryLuxury      Category = "luxury"
	CategoryUltraLuxury Category = "ultraluxury"
	CategorySports      Category = "sports"
	CategoryAll         Category = "all"
)

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	switch c {
	case CategoryStandard, CategoryLuxury, CategoryUltraLuxury, CategorySports, CategoryAll:
		return true
	}
	return false
}

// FuelType represents the vehicle's fuel system.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelCNG      FuelType = "cng"
)

// IsValid returns true if the fuel type is recognized.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid, FuelCNG:
		return true
	}
	return false
}

// Transmission represents the vehicle's transmission type.
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
	TransmissionCVT       Transmission = "cvt"
)

// IsValid returns true if the transmission type is recognized.
func (t Transmission) IsValid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic, TransmissionCVT:
		return true
	}
	return false
}

// Specs holds the optional technical specification sheet of a vehicle.
type Specs struct {
	MaxSpeed     int          `json:"max_speed,omitempty"`
	Mileage      float64      `json:"mileage,omitempty"`
	SeatCapacity int          `json:"seat_capacity,omitempty"`
	FuelType     FuelType     `json:"fuel_type,omitempty"`
	Transmission Transmission `json:"transmission,omitempty"`
	Engine       string       `json:"engine,omitempty"`
	Year         int          `json:"year,omitempty"`
	Color        string       `json:"color,omitempty"`
}

// Vehicle is the aggregate root for a rentable vehicle in the inventory.
// Its availability flag is administrator-controlled and is not derived from
// booking occupancy.
type Vehicle struct {
	id          uuid.UUID
	name        string
	vehicleType Type
	category    Category
	brand       string
	rentPerDay  float64
	imageURL    string
	isAvailable bool
	specs       Specs

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewVehicle creates a new available vehicle with validated fields.
func NewVehicle(
	name string,
	vehicleType Type,
	category Category,
	brand string,
	rentPerDay float64,
	imageURL string,
	specs Specs,
) (*Vehicle, error) {
	if name == "" {
		return nil, domain.NewValidationError("vehicle name is required")
	}
	if !vehicleType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid vehicle type: %s", vehicleType))
	}
	if category == "" {
		category = CategoryStandard
	}
	if !category.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid category: %s", category))
	}
	if brand == "" {
		return nil, domain.NewValidationError("brand is required")
	}
	if rentPerDay <= 0 {
		return nil, domain.NewValidationError("rent per day must be positive")
	}
	if specs.FuelType != "" && !specs.FuelType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid fuel type: %s", specs.FuelType))
	}
	if specs.Transmission != "" && !specs.Transmission.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid transmission: %s", specs.Transmission))
	}

	now := time.Now().UTC()
	return &Vehicle{
		id:          uuid.New(),
		name:        name,
		vehicleType: vehicleType,
		category:    category,
		brand:       brand,
		rentPerDay:  rentPerDay,
		imageURL:    imageURL,
		isAvailable: true,
		specs:       specs,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Vehicle from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name string,
	vehicleType Type,
	category Category,
	brand string,
	rentPerDay float64,
	imageURL string,
	isAvailable bool,
	specs Specs,
	version int64,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:          id,
		name:        name,
		vehicleType: vehicleType,
		category:    category,
		brand:       brand,
		rentPerDay:  rentPerDay,
		imageURL:    imageURL,
		isAvailable: isAvailable,
		specs:       specs,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (v *Vehicle) ID() uuid.UUID        { return v.id }
func (v *Vehicle) Name() string         { return v.name }
func (v *Vehicle) VehicleType() Type    { return v.vehicleType }
func (v *Vehicle) Category() Category   { return v.category }
func (v *Vehicle) Brand() string        { return v.brand }
func (v *Vehicle) RentPerDay() float64  { return v.rentPerDay }
func (v *Vehicle) ImageURL() string     { return v.imageURL }
func (v *Vehicle) IsAvailable() bool    { return v.isAvailable }
func (v *Vehicle) Specs() Specs         { return v.specs }
func (v *Vehicle) Version() int64       { return v.version }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

// --- Behavior ---

// Update applies partial updates to the vehicle. Zero values leave the
// corresponding field untouched; availability is updated only when given.
func (v *Vehicle) Update(
	name string,
	vehicleType Type,
	category Category,
	brand string,
	rentPerDay float64,
	imageURL string,
	isAvailable *bool,
	specs *Specs,
) error {
	if name != "" {
		v.name = name
	}
	if vehicleType != "" {
		if !vehicleType.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid vehicle type: %s", vehicleType))
		}
		v.vehicleType = vehicleType
	}
	if category != "" {
		if !category.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid category: %s", category))
		}
		v.category = category
	}
	if brand != "" {
		v.brand = brand
	}
	if rentPerDay > 0 {
		v.rentPerDay = rentPerDay
	}
	if imageURL != "" {
		v.imageURL = imageURL
	}
	if isAvailable != nil {
		v.isAvailable = *isAvailable
	}
	if specs != nil {
		if specs.FuelType != "" && !specs.FuelType.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid fuel type: %s", specs.FuelType))
		}
		if specs.Transmission != "" && !specs.Transmission.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid transmission: %s", specs.Transmission))
		}
		v.specs = *specs
	}
	v.version++
	v.updatedAt = time.Now().UTC()
	return nil
}
