package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate     = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgMissingService  = "отсутствует параметр serviceId"
	msgServiceNotFound = "услуга не найдена"
	msgStaffNotFound   = "мастер не найден"
	msgDateInPast      = "дата уже прошла"
	msgInvalidInput    = "некорректные входные данные"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/staff/{staffId}/slots?serviceId=...&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonID := vars["salonId"]
	staffID := vars["staffId"]

	serviceID := r.URL.Query().Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /salons/{id}/staff/{id}/slots - Missing serviceId")
		handlers.RespondBadRequest(w, msgMissingService)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &get_available_slots.Request{
		SalonID:   salonID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, get_available_slots.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/slots - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, get_available_slots.ErrDateInPast):
			h.logger.Warn("GET /salons/{id}/staff/{id}/slots - Date in past: date=%s", date.Format(domain.DateFormat))
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, get_available_slots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/staff/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /salons/{id}/staff/{id}/slots - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/staff/{id}/slots - Found %d slots: staff_id=%s, date=%s",
		len(resp.Slots), staffID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
