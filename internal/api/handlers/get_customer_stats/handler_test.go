package get_customer_stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/stats"
	"github.com/m04kA/SMC-SalonBooking/internal/service/stats/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) CustomerStats(ctx context.Context, userID uuid.UUID) (*models.CustomerStatsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CustomerStatsResponse{Customers: []models.CustomerStats{
		{CustomerID: uuid.New(), FullName: "Anna Smith", BookingsCount: 2, TotalSpent: 130},
	}}, nil
}

func get(svc *fakeService, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/customers/stats", nil)
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := get(&fakeService{}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.CustomerStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Customers, 1)
	assert.Equal(t, 130.0, body.Customers[0].TotalSpent)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, get(&fakeService{}, false).Code)
	assert.Equal(t, http.StatusForbidden, get(&fakeService{err: stats.ErrAccessDenied}, true).Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: errors.New("boom")}, true).Code)
}
