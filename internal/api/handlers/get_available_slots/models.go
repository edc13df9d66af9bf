package get_available_slots

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/usecase/get_available_slots"
)

// SlotResponse один доступный слот
type SlotResponse struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	SalonID   string         `json:"salonId"`
	StaffID   string         `json:"staffId"`
	ServiceID string         `json:"serviceId"`
	Date      string         `json:"date"` // "2026-09-15"
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *get_available_slots.Response) *GetAvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes(),
		}
	}

	return &GetAvailableSlotsResponse{
		SalonID:   resp.SalonID,
		StaffID:   resp.StaffID,
		ServiceID: resp.ServiceID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
