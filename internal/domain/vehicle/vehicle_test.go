package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicleDefaults(t *testing.T) {
	v, err := NewVehicle("Swift Dzire", TypeCar, "", "Suzuki", 1200, "", Specs{})
	require.NoError(t, err)

	assert.Equal(t, CategoryStandard, v.Category())
	assert.True(t, v.IsAvailable())
	assert.Equal(t, int64(1), v.Version())
}

func TestNewVehicleValidation(t *testing.T) {
	_, err := NewVehicle("", TypeCar, CategoryStandard, "Suzuki", 1200, "", Specs{})
	assert.Error(t, err)

	_, err = NewVehicle("Swift", Type("truck"), CategoryStandard, "Suzuki", 1200, "", Specs{})
	assert.Error(t, err)

	_, err = NewVehicle("Swift", TypeCar, Category("budget"), "Suzuki", 1200, "", Specs{})
	assert.Error(t, err)

	_, err = NewVehicle("Swift", TypeCar, CategoryStandard, "", 1200, "", Specs{})
	assert.Error(t, err)

	_, err = NewVehicle("Swift", TypeCar, CategoryStandard, "Suzuki", 0, "", Specs{})
	assert.Error(t, err)

	_, err = NewVehicle("Swift", TypeCar, CategoryStandard, "Suzuki", 1200, "", Specs{FuelType: "coal"})
	assert.Error(t, err)
}

func TestVehicleUpdatePartial(t *testing.T) {
	v, err := NewVehicle("Swift", TypeCar, CategoryStandard, "Suzuki", 1200, "", Specs{SeatCapacity: 5})
	require.NoError(t, err)

	// Zero values leave fields untouched; set fields replace them.
	require.NoError(t, v.Update("", "", CategoryLuxury, "", 1500, "", nil, nil))

	assert.Equal(t, "Swift", v.Name())
	assert.Equal(t, CategoryLuxury, v.Category())
	assert.Equal(t, 1500.0, v.RentPerDay())
	assert.Equal(t, 5, v.Specs().SeatCapacity)
	assert.Equal(t, int64(2), v.Version())
}

func TestVehicleUpdateAvailability(t *testing.T) {
	v, err := NewVehicle("Swift", TypeCar, CategoryStandard, "Suzuki", 1200, "", Specs{})
	require.NoError(t, err)

	off := false
	require.NoError(t, v.Update("", "", "", "", 0, "", &off, nil))
	assert.False(t, v.IsAvailable())

	on := true
	require.NoError(t, v.Update("", "", "", "", 0, "", &on, nil))
	assert.True(t, v.IsAvailable())
}

func TestVehicleUpdateValidation(t *testing.T) {
	v, err := NewVehicle("Swift", TypeCar, CategoryStandard, "Suzuki", 1200, "", Specs{})
	require.NoError(t, err)

	assert.Error(t, v.Update("", Type("truck"), "", "", 0, "", nil, nil))
	assert.Error(t, v.Update("", "", "", "", 0, "", nil, &Specs{Transmission: "dual-clutch-x"}))
}
