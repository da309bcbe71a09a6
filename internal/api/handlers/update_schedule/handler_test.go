package update_schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	req *models.UpdateWeekRequest
	err error
}

func (f *fakeService) UpdateWeek(ctx context.Context, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.WeekResponse{Days: req.Days}, nil
}

const weekBody = `{"days":[{"dayOfWeek":0,"isOpen":false,"slotDurationMinutes":30},
{"dayOfWeek":1,"isOpen":true,"openingTime":"10:00","closingTime":"18:00","slotDurationMinutes":60}]}`

func put(svc *fakeService, userID *uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/admin/schedule", strings.NewReader(body))
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	userID := uuid.New()

	rec := put(svc, &userID, weekBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, svc.req.UserID)
	require.Len(t, svc.req.Days, 2)
	assert.Equal(t, "10:00", *svc.req.Days[1].OpeningTime)
}

func TestHandle_Errors(t *testing.T) {
	userID := uuid.New()

	assert.Equal(t, http.StatusUnauthorized, put(&fakeService{}, nil, weekBody).Code)
	assert.Equal(t, http.StatusBadRequest, put(&fakeService{}, &userID, `{"days":"all"}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		put(&fakeService{err: fmt.Errorf("%w: expected 7 days, got 2", domain.ErrValidation)}, &userID, weekBody).Code)
	assert.Equal(t, http.StatusForbidden, put(&fakeService{err: schedule.ErrAccessDenied}, &userID, weekBody).Code)
	assert.Equal(t, http.StatusInternalServerError, put(&fakeService{err: errors.New("boom")}, &userID, weekBody).Code)
}
