package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService (каталог салонов: услуги, мастера)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу салона (длительность, цена, тариф переработки)
func (c *Client) GetService(ctx context.Context, salonID, serviceID string) (*Service, error) {
	url := fmt.Sprintf("%s/internal/salons/%s/services/%s", c.baseURL, salonID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetStaff получает мастера салона вместе с его рабочим расписанием
func (c *Client) GetStaff(ctx context.Context, salonID, staffID string) (*Staff, error) {
	url := fmt.Sprintf("%s/internal/salons/%s/staff/%s", c.baseURL, salonID, staffID)

	var staff Staff
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return &staff, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ.
// На 404 возвращает notFoundErr соответствующего ресурса.
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// ScheduleForDay возвращает рабочие часы мастера на указанный день недели
func (s *Staff) ScheduleForDay(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return s.WorkingHours.Monday
	case time.Tuesday:
		return s.WorkingHours.Tuesday
	case time.Wednesday:
		return s.WorkingHours.Wednesday
	case time.Thursday:
		return s.WorkingHours.Thursday
	case time.Friday:
		return s.WorkingHours.Friday
	case time.Saturday:
		return s.WorkingHours.Saturday
	case time.Sunday:
		return s.WorkingHours.Sunday
	default:
		return DaySchedule{IsWorking: false}
	}
}
