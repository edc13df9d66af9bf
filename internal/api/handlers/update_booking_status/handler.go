package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgInvalidStatus      = "переход в указанный статус невозможен"
	msgUnknownStatus      = "неизвестный статус"
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var (
		booking *models.BookingResponse
		err     error
	)

	switch domain.BookingStatus(req.Status) {
	case domain.BookingStatusConfirmed:
		booking, err = h.service.Confirm(r.Context(), bookingID, actorID)
	case domain.BookingStatusCompleted:
		booking, err = h.service.Complete(r.Context(), bookingID, actorID)
	case domain.BookingStatusNoShow:
		booking, err = h.service.MarkNoShow(r.Context(), bookingID, actorID)
	default:
		h.logger.Warn("PATCH /bookings/{id}/status - Unknown status: %s", req.Status)
		handlers.RespondBadRequest(w, msgUnknownStatus)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%s, status=%s",
				bookingID, req.Status)
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated successfully: booking_id=%s, status=%s, actor=%s",
		bookingID, req.Status, actorID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
