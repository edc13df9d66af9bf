package mark_no_show

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/service/reservations"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "запись не найдена"
	msgInvalidStatus = "неявку нельзя отметить в текущем статусе"
	msgTooEarly      = "время записи ещё не закончилось"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/no-show - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	reservation, err := h.service.MarkNoShow(r.Context(), reservationID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Invalid status: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrTooEarlyForNoShow):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Too early: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgTooEarly)

		default:
			h.logger.Error("PATCH /reservations/{id}/no-show - Failed to mark no-show: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/no-show - No-show marked successfully: reservation_id=%s, actor=%s",
		reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
