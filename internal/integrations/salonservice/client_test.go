package salonservice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, nopLogger{})
}

func TestGetAvailability(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability/employee", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("employeeId"))
		assert.Equal(t, "2026-09-07", r.URL.Query().Get("startDay"))
		assert.Equal(t, "2026-09-13", r.URL.Query().Get("endDay"))

		io.WriteString(w, `{"result": [
			{"id": 1, "employee_id": 7, "date": "2026-09-07", "start_time": "09:00:00", "end_time": "13:00:00", "title": "Утро"}
		]}`)
	})

	blocks, err := client.GetAvailability(context.Background(), 7, "2026-09-07", "2026-09-13")
	require.NoError(t, err)

	require.Len(t, blocks, 1)
	assert.Equal(t, int64(1), blocks[0].ID)
	assert.Equal(t, int64(7), blocks[0].EmployeeID)
	assert.Equal(t, "Утро", blocks[0].Title)
	assert.Equal(t, types.DateString("2026-09-07"), blocks[0].Interval.Date)
	assert.Equal(t, types.TimeString("09:00:00"), blocks[0].Interval.StartTime)
	assert.Equal(t, types.TimeString("13:00:00"), blocks[0].Interval.EndTime)
}

func TestGetAvailabilityEmployeeNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetAvailability(context.Background(), 404, "2026-09-07", "2026-09-13")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestGetAvailabilityMalformedInterval(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"result": [
			{"id": 1, "employee_id": 7, "date": "07.09.2026", "start_time": "09:00:00", "end_time": "13:00:00"}
		]}`)
	})

	_, err := client.GetAvailability(context.Background(), 7, "2026-09-07", "2026-09-13")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetAppointments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appointment/employee", r.URL.Path)

		io.WriteString(w, `{"result": [
			{"id": 100, "employee_id": 7, "service_id": 3, "service_name": "Стрижка",
			 "date": "2026-09-07", "start_time": "10:00:00", "end_time": "10:45:00"}
		]}`)
	})

	appointments, err := client.GetAppointments(context.Background(), 7, "2026-09-07", "2026-09-13")
	require.NoError(t, err)

	require.Len(t, appointments, 1)
	assert.Equal(t, int64(100), appointments[0].ID)
	assert.Equal(t, "Стрижка", appointments[0].ServiceName)
}

func TestCreateAvailability(t *testing.T) {
	var got struct {
		Slots []NewSlot `json:"slots"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/availability/new", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	intervals := []domain.TimeInterval{
		{Date: "2026-09-07", StartTime: "08:00:00", EndTime: "09:00:00"},
		{Date: "2026-09-07", StartTime: "10:00:00", EndTime: "11:00:00"},
	}
	require.NoError(t, client.CreateAvailability(context.Background(), 7, intervals))

	// Все фрагменты уходят одним батчем
	require.Len(t, got.Slots, 2)
	assert.Equal(t, NewSlot{EmployeeID: 7, Date: "2026-09-07", StartTime: "08:00:00", EndTime: "09:00:00"}, got.Slots[0])
	assert.Equal(t, NewSlot{EmployeeID: 7, Date: "2026-09-07", StartTime: "10:00:00", EndTime: "11:00:00"}, got.Slots[1])
}

func TestUpdateAvailability(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/availability/update/15", r.URL.Path)

		var slot NewSlot
		require.NoError(t, json.NewDecoder(r.Body).Decode(&slot))
		assert.Equal(t, "10:00:00", slot.StartTime)
	})

	interval := domain.TimeInterval{Date: "2026-09-07", StartTime: "10:00:00", EndTime: "14:00:00"}
	assert.NoError(t, client.UpdateAvailability(context.Background(), 15, 7, interval))
}

func TestDeleteAvailability(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/availability/15", r.URL.Path)
	})

	assert.NoError(t, client.DeleteAvailability(context.Background(), 15))
}

func TestDeleteAvailabilityNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteAvailability(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestCreateAppointment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appointment/new", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"employee_id": 7, "service_id": 3,
			"date": "2026-09-07", "start_time": "09:45:00", "end_time": "10:30:00"
		}`, string(body))
		w.WriteHeader(http.StatusCreated)
	})

	interval := domain.TimeInterval{Date: "2026-09-07", StartTime: "09:45:00", EndTime: "10:30:00"}
	assert.NoError(t, client.CreateAppointment(context.Background(), 7, 3, interval))
}

func TestCreateAppointmentRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"code": 409, "message": "time already booked"}`)
	})

	interval := domain.TimeInterval{Date: "2026-09-07", StartTime: "09:45:00", EndTime: "10:30:00"}
	err := client.CreateAppointment(context.Background(), 7, 3, interval)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "time already booked")
}

func TestGetServices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services", r.URL.Path)
		io.WriteString(w, `{"result": [
			{"id": 3, "name": "Стрижка", "duration": 45, "price": 1500}
		]}`)
	})

	services, err := client.GetServices(context.Background())
	require.NoError(t, err)

	require.Len(t, services, 1)
	assert.Equal(t, Service{ID: 3, Name: "Стрижка", DurationMinutes: 45, Price: 1500}, services[0])
}

func TestGetEmployees(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/employees", r.URL.Path)
		io.WriteString(w, `{"result": [
			{"id": 7, "first_name": "Анна", "last_name": "Петрова"}
		]}`)
	})

	employees, err := client.GetEmployees(context.Background())
	require.NoError(t, err)

	require.Len(t, employees, 1)
	assert.Equal(t, Employee{ID: 7, FirstName: "Анна", LastName: "Петрова"}, employees[0])
}

type fakeMetrics struct {
	ops []string
}

func (f *fakeMetrics) IncUpstreamError(operation string) {
	f.ops = append(f.ops, operation)
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // соединение гарантированно не установится

	m := &fakeMetrics{}
	client := NewClient(server.URL, time.Second, nopLogger{}).WithMetrics(m)

	_, err := client.GetServices(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	err = client.DeleteAvailability(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)

	assert.Equal(t, []string{"get_services", "delete_availability"}, m.ops)
}

func TestServerErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetServices(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	err = client.DeleteAvailability(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
