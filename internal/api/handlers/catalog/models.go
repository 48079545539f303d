package catalog

import (
	"github.com/salonkit/schedule-service/internal/integrations/salonservice"
)

// Service модель услуги в HTTP response
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// Specialist модель специалиста в HTTP response
type Specialist struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ServicesResponse HTTP response списка услуг
type ServicesResponse struct {
	Services []Service `json:"services"`
}

// SpecialistsResponse HTTP response списка специалистов
type SpecialistsResponse struct {
	Specialists []Specialist `json:"specialists"`
}

// FromServices конвертирует wire-модели услуг в HTTP response
func FromServices(services []salonservice.Service) *ServicesResponse {
	out := make([]Service, len(services))
	for i, svc := range services {
		out[i] = Service{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		}
	}
	return &ServicesResponse{Services: out}
}

// FromEmployees конвертирует wire-модели сотрудников в HTTP response
func FromEmployees(employees []salonservice.Employee) *SpecialistsResponse {
	out := make([]Specialist, len(employees))
	for i, emp := range employees {
		out[i] = Specialist{
			ID:        emp.ID,
			FirstName: emp.FirstName,
			LastName:  emp.LastName,
		}
	}
	return &SpecialistsResponse{Specialists: out}
}
