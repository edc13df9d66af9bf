package get_available_slots

import (
	"time"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	SalonID   string    // ID салона
	StaffID   string    // ID мастера
	ServiceID string    // ID услуги (определяет длительность слота)
	Date      time.Time // День, на который ищутся слоты
}

// Response модель ответа со списком доступных слотов.
// Слоты отсортированы хронологически; пустой список означает, что мастер
// не работает в этот день или день полностью занят.
type Response struct {
	SalonID   string
	StaffID   string
	ServiceID string
	Date      time.Time
	Slots     []domain.AvailableSlot
}
