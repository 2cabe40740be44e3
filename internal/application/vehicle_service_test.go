package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentwheels/service-rental/internal/domain"
	vehicleDomain "github.com/rentwheels/service-rental/internal/domain/vehicle"
)

func newVehicleService() (*VehicleService, *fakeVehicleRepo) {
	repo := newFakeVehicleRepo()
	return NewVehicleService(repo, zap.NewNop()), repo
}

func TestCreateVehicle(t *testing.T) {
	svc, _ := newVehicleService()

	dto, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Name:        "Model 3",
		VehicleType: "car",
		Category:    "luxury",
		Brand:       "Tesla",
		RentPerDay:  5000,
		Specs:       &vehicleDomain.Specs{SeatCapacity: 5, FuelType: "electric"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Model 3", dto.Name)
	assert.Equal(t, "luxury", dto.Category)
	assert.True(t, dto.IsAvailable)
	assert.Equal(t, 5, dto.Specs.SeatCapacity)
}

func TestCreateVehicleValidation(t *testing.T) {
	svc, _ := newVehicleService()

	_, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Name:        "Model 3",
		VehicleType: "spaceship",
		Brand:       "Tesla",
		RentPerDay:  5000,
	})

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestListVehiclesFilterValidation(t *testing.T) {
	svc, _ := newVehicleService()

	_, err := svc.ListVehicles(context.Background(), ListVehiclesRequest{VehicleType: "truck"})
	assert.Error(t, err)

	_, err = svc.ListVehicles(context.Background(), ListVehiclesRequest{Category: "budget"})
	assert.Error(t, err)

	// "all" is the wildcard category, not a filter value.
	out, err := svc.ListVehicles(context.Background(), ListVehiclesRequest{Category: "all"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUpdateVehicleAvailabilityToggle(t *testing.T) {
	svc, _ := newVehicleService()

	dto, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Name:        "Swift",
		VehicleType: "car",
		Brand:       "Suzuki",
		RentPerDay:  1200,
	})
	require.NoError(t, err)

	off := false
	updated, err := svc.UpdateVehicle(context.Background(), dto.ID, UpdateVehicleRequest{IsAvailable: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "Swift", updated.Name)
}

func TestDeleteVehicle(t *testing.T) {
	svc, repo := newVehicleService()

	dto, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Name:        "Swift",
		VehicleType: "car",
		Brand:       "Suzuki",
		RentPerDay:  1200,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVehicle(context.Background(), dto.ID))

	_, err = repo.FindByID(context.Background(), dto.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGetVehicleNotFound(t *testing.T) {
	svc, _ := newVehicleService()

	_, err := svc.GetVehicle(context.Background(), uuid.New())
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
