package get_user_bookings

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
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) GetUserBookings(ctx context.Context, userID uuid.UUID) (*models.BookingListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{CustomerID: userID, ServiceName: "Cut"}}}, nil
}

func TestHandle(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me/bookings", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, userID, body.Bookings[0].CustomerID)
}

func TestHandle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/users/me/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/users/me/bookings", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop()).Handle(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
