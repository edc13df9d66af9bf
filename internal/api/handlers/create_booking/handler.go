package create_booking

import (
	"errors"
	"net/http"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgReservationNotFound = "запись не найдена"
	msgReservationMismatch = "запись принадлежит другому клиенту или салону"
	msgInconsistentAmounts = "суммы бронирования не согласованы"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Create(r.Context(), req.ToServiceRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrReservationNotFound):
			h.logger.Warn("POST /bookings - Reservation not found: %v", err)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, bookings.ErrReservationMismatch):
			h.logger.Warn("POST /bookings - Reservation mismatch: %v", err)
			handlers.RespondConflict(w, msgReservationMismatch)

		case errors.Is(err, bookings.ErrInconsistentAmounts):
			h.logger.Warn("POST /bookings - Inconsistent amounts: %v", err)
			handlers.RespondBadRequest(w, msgInconsistentAmounts)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: id=%s, actor=%s", booking.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, booking)
}
