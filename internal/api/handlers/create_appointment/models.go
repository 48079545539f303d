package create_appointment

import (
	createAppointment "github.com/salonkit/schedule-service/internal/usecase/create_appointment"
	"github.com/salonkit/schedule-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EmployeeID int64  `json:"employeeId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`      // YYYY-MM-DD
	StartTime  string `json:"startTime"` // HH:MM:SS
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	EmployeeID  int64  `json:"employeeId"`
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// ToUseCaseRequest создает запрос use case из HTTP request
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:     userID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		EmployeeID:  resp.EmployeeID,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Date:        resp.Interval.Date.String(),
		StartTime:   resp.Interval.StartTime.String(),
		EndTime:     resp.Interval.EndTime.String(),
	}
}
