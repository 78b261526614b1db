package update_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *updateBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateBooking.Request) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: 3, GroupID: "g", TotalSlots: 1}, nil
}

func put(uc *fakeUseCase, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PartialPatch(t *testing.T) {
	uc := &fakeUseCase{}

	rec := put(uc, "/api/v1/bookings/3", `{"date":"2025-03-01","time":"4:00 PM"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "3", uc.got.BookingID)
	assert.Nil(t, uc.got.CapsterID)
	assert.Empty(t, uc.got.ServiceIDs)
	require.NotNil(t, uc.got.Date)
	assert.Equal(t, "2025-03-01", *uc.got.Date)
	assert.Equal(t, "4:00 PM", *uc.got.Time)
}

func TestHandle_NullFieldsAreAbsent(t *testing.T) {
	uc := &fakeUseCase{}

	put(uc, "/api/v1/bookings/3", `{"capster_id":null,"service_ids":null,"time":"4:00 PM"}`)

	require.NotNil(t, uc.got)
	assert.Nil(t, uc.got.CapsterID)
	assert.Empty(t, uc.got.ServiceIDs)
	assert.Nil(t, uc.got.Date)
}

func TestHandle_CapsterAsNumber(t *testing.T) {
	uc := &fakeUseCase{}

	put(uc, "/api/v1/bookings/3", `{"capster_id":6,"service_ids":[10]}`)

	require.NotNil(t, uc.got.CapsterID)
	assert.Equal(t, "6", *uc.got.CapsterID)
	assert.JSONEq(t, `[10]`, string(uc.got.ServiceIDs))
}

func TestHandle_UseCaseError(t *testing.T) {
	uc := &fakeUseCase{err: domain.InvalidArgument("cancelled booking cannot be updated")}

	rec := put(uc, "/api/v1/bookings/3", `{"capster_id":6}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cancelled booking cannot be updated")
}
