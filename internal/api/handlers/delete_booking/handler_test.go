package delete_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	err error
	req *models.DeleteBookingRequest
}

func (f *fakeService) Delete(ctx context.Context, bookingID uuid.UUID, req *models.DeleteBookingRequest) error {
	f.req = req
	return f.err
}

func serve(svc *fakeService, query string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/admin/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodDelete, "/admin/bookings/"+uuid.NewString()+query, nil)
	req.Header.Set(middleware.UserIDHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ConfirmFlag(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "?confirm=true")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, svc.req.Confirm)

	svc = &fakeService{err: bookings.ErrConfirmationRequired}
	rec = serve(svc, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.req.Confirm)

	rec = serve(&fakeService{}, "?confirm=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{fmt.Errorf("%w: pending", domain.ErrInvalidTransition), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := serve(&fakeService{err: tt.err}, "?confirm=true")
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}
