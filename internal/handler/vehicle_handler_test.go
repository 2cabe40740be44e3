package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentwheels/service-rental/internal/application"
	"github.com/rentwheels/service-rental/internal/auth"
	"github.com/rentwheels/service-rental/internal/domain"
	vehicleDomain "github.com/rentwheels/service-rental/internal/domain/vehicle"
)

// captureVehicleRepo records the filter passed to List so tests can assert
// on query parameter parsing.
type captureVehicleRepo struct {
	lastFilter vehicleDomain.Filter
}

func (r *captureVehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*vehicleDomain.Vehicle, error) {
	return nil, domain.NewNotFoundError("vehicle", id.String())
}

func (r *captureVehicleRepo) List(ctx context.Context, filter vehicleDomain.Filter) ([]*vehicleDomain.Vehicle, error) {
	r.lastFilter = filter
	return nil, nil
}

func (r *captureVehicleRepo) Save(ctx context.Context, v *vehicleDomain.Vehicle) error   { return nil }
func (r *captureVehicleRepo) Update(ctx context.Context, v *vehicleDomain.Vehicle) error { return nil }
func (r *captureVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }

func newVehicleTestRouter(t *testing.T) (*gin.Engine, *captureVehicleRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &captureVehicleRepo{}
	service := application.NewVehicleService(repo, zap.NewNop())
	h := NewVehicleHandler(service)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"), auth.NewJWTManager("test-secret", time.Hour))
	return router, repo
}

func TestListVehiclesQueryParams(t *testing.T) {
	router, repo := newVehicleTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/vehicles?vehicleType=car&category=luxury&minPrice=500&maxPrice=2000&isAvailable=true", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	filter := repo.lastFilter
	require.NotNil(t, filter.VehicleType)
	assert.Equal(t, vehicleDomain.TypeCar, *filter.VehicleType)
	require.NotNil(t, filter.Category)
	assert.Equal(t, vehicleDomain.CategoryLuxury, *filter.Category)
	require.NotNil(t, filter.MinPrice)
	assert.Equal(t, 500.0, *filter.MinPrice)
	require.NotNil(t, filter.MaxPrice)
	assert.Equal(t, 2000.0, *filter.MaxPrice)
	require.NotNil(t, filter.IsAvailable)
	assert.True(t, *filter.IsAvailable)
}

func TestListVehiclesNoFilters(t *testing.T) {
	router, repo := newVehicleTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, repo.lastFilter.VehicleType)
	assert.Nil(t, repo.lastFilter.Category)
	assert.Nil(t, repo.lastFilter.MinPrice)
	assert.Nil(t, repo.lastFilter.MaxPrice)
	assert.Nil(t, repo.lastFilter.IsAvailable)
}

func TestListVehiclesRejectsMalformedParams(t *testing.T) {
	router, _ := newVehicleTestRouter(t)

	for _, query := range []string{"minPrice=cheap", "maxPrice=lots", "isAvailable=maybe"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vehicles?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query=%s", query)
	}
}
