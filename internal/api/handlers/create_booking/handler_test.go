package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createBooking.Request
	resp *models.BookingResponse
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*models.BookingResponse, error) {
	f.got = req
	return f.resp, f.err
}

var userID = uuid.MustParse("9b2f7c3e-4a1d-4c8e-9f6a-2d3b5e7f1a0c")

func post(h *Handler, body string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &models.BookingResponse{ID: 11, GroupID: "g", TotalSlots: 2}}
	h := NewHandler(uc, nopLogger{})

	rec := post(h, `{"capster_id":"5","branch_id":1,"service_ids":"[10, 11]","date":"2025-03-01","time":"2:00 PM"}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, userID.String(), uc.got.UserID)
	assert.Equal(t, "5", uc.got.CapsterID)
	assert.Equal(t, "1", uc.got.BranchID)
	assert.JSONEq(t, `"[10, 11]"`, string(uc.got.ServiceIDs))
	assert.Equal(t, "2:00 PM", uc.got.Time)

	var body struct {
		Success bool                   `json:"success"`
		Data    models.BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(11), body.Data.ID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		withUser bool
		err      error
		status   int
	}{
		{name: "no user", body: `{}`, withUser: false, status: http.StatusUnauthorized},
		{name: "malformed body", body: `{"capster_id":`, withUser: true, status: http.StatusBadRequest},
		{name: "capster object", body: `{"capster_id":{}}`, withUser: true, status: http.StatusBadRequest},
		{name: "conflict", body: `{}`, withUser: true, err: domain.NewError(domain.KindConflict, "taken"), status: http.StatusConflict},
		{name: "limit", body: `{}`, withUser: true, err: domain.NewError(domain.KindLimitExceeded, "limit"), status: http.StatusTooManyRequests},
		{name: "past", body: `{}`, withUser: true, err: domain.NewError(domain.KindPastSchedule, "past"), status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})
			rec := post(h, tt.body, tt.withUser)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.status, body.Error.StatusCode)
		})
	}
}
