package salonservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/salonkit/schedule-service/internal/domain"
	"github.com/salonkit/schedule-service/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учёта ошибок запросов к бэкенду
type Metrics interface {
	IncUpstreamError(operation string)
}

// Client клиент для работы с бэкендом салона
// Бэкенд владеет всем персистентным состоянием (доступность, записи, услуги);
// этот сервис только читает его и отправляет подтверждённые изменения
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента бэкенда салона
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithMetrics включает учёт ошибок запросов к бэкенду
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// incUpstreamError фиксирует неуспешный запрос к бэкенду (метрики опциональны)
func (c *Client) incUpstreamError(operation string) {
	if c.metrics != nil {
		c.metrics.IncUpstreamError(operation)
	}
}

// GetAvailability получает блоки доступности сотрудника за период [startDay, endDay]
func (c *Client) GetAvailability(ctx context.Context, employeeID int64, startDay, endDay types.DateString) ([]domain.AvailabilityBlock, error) {
	url := fmt.Sprintf("%s/availability/employee?employeeId=%d&startDay=%s&endDay=%s",
		c.baseURL, employeeID, startDay, endDay)

	var envelope struct {
		Result []Block `json:"result"`
	}
	if err := c.getJSON(ctx, "get_availability", url, &envelope); err != nil {
		return nil, err
	}

	blocks := make([]domain.AvailabilityBlock, 0, len(envelope.Result))
	for _, b := range envelope.Result {
		block, err := b.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: block id=%d: %v", ErrInvalidResponse, b.ID, err)
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// GetAppointments получает записи клиентов к сотруднику за период [startDay, endDay]
func (c *Client) GetAppointments(ctx context.Context, employeeID int64, startDay, endDay types.DateString) ([]domain.Appointment, error) {
	url := fmt.Sprintf("%s/appointment/employee?employeeId=%d&startDay=%s&endDay=%s",
		c.baseURL, employeeID, startDay, endDay)

	var envelope struct {
		Result []Appointment `json:"result"`
	}
	if err := c.getJSON(ctx, "get_appointments", url, &envelope); err != nil {
		return nil, err
	}

	appointments := make([]domain.Appointment, 0, len(envelope.Result))
	for _, a := range envelope.Result {
		appointment, err := a.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: appointment id=%d: %v", ErrInvalidResponse, a.ID, err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}

// CreateAvailability сохраняет новые блоки доступности одним запросом
// Все фрагменты подтверждённого добавления вставляются атомарно на стороне бэкенда
func (c *Client) CreateAvailability(ctx context.Context, employeeID int64, intervals []domain.TimeInterval) error {
	slots := make([]NewSlot, len(intervals))
	for i, interval := range intervals {
		slots[i] = FromInterval(employeeID, interval)
	}

	payload := struct {
		Slots []NewSlot `json:"slots"`
	}{Slots: slots}

	url := fmt.Sprintf("%s/availability/new", c.baseURL)
	return c.send(ctx, "create_availability", http.MethodPost, url, payload)
}

// UpdateAvailability заменяет временные границы существующего блока (тот же id)
func (c *Client) UpdateAvailability(ctx context.Context, blockID, employeeID int64, interval domain.TimeInterval) error {
	payload := FromInterval(employeeID, interval)

	url := fmt.Sprintf("%s/availability/update/%d", c.baseURL, blockID)
	return c.send(ctx, "update_availability", http.MethodPut, url, payload)
}

// DeleteAvailability удаляет блок доступности
func (c *Client) DeleteAvailability(ctx context.Context, blockID int64) error {
	url := fmt.Sprintf("%s/availability/%d", c.baseURL, blockID)
	return c.send(ctx, "delete_availability", http.MethodDelete, url, nil)
}

// CreateAppointment создает новую запись клиента к сотруднику
func (c *Client) CreateAppointment(ctx context.Context, employeeID, serviceID int64, interval domain.TimeInterval) error {
	payload := struct {
		EmployeeID int64  `json:"employee_id"`
		ServiceID  int64  `json:"service_id"`
		Date       string `json:"date"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
	}{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       interval.Date.String(),
		StartTime:  interval.StartTime.String(),
		EndTime:    interval.EndTime.String(),
	}

	url := fmt.Sprintf("%s/appointment/new", c.baseURL)
	return c.send(ctx, "create_appointment", http.MethodPost, url, payload)
}

// GetServices получает список услуг салона
func (c *Client) GetServices(ctx context.Context) ([]Service, error) {
	url := fmt.Sprintf("%s/services", c.baseURL)

	var envelope struct {
		Result []Service `json:"result"`
	}
	if err := c.getJSON(ctx, "get_services", url, &envelope); err != nil {
		return nil, err
	}

	return envelope.Result, nil
}

// GetEmployees получает список сотрудников (специалистов)
func (c *Client) GetEmployees(ctx context.Context) ([]Employee, error) {
	url := fmt.Sprintf("%s/users/employees", c.baseURL)

	var envelope struct {
		Result []Employee `json:"result"`
	}
	if err := c.getJSON(ctx, "get_employees", url, &envelope); err != nil {
		return nil, err
	}

	return envelope.Result, nil
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) getJSON(ctx context.Context, op, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.incUpstreamError(op)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrEmployeeNotFound
	default:
		c.incUpstreamError(op)
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// send выполняет запрос на изменение и интерпретирует статус ответа
func (c *Client) send(ctx context.Context, op, method, url string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.incUpstreamError(op)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrBlockNotFound
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: %s", ErrRejected, errResp.Message)
		}
		return fmt.Errorf("%w: status code %d", ErrRejected, resp.StatusCode)
	default:
		c.incUpstreamError(op)
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
