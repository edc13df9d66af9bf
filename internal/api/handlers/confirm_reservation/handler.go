package confirm_reservation

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
	msgInvalidStatus = "запись нельзя подтвердить в текущем статусе"
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

// Handle PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	reservation, err := h.service.Confirm(r.Context(), reservationID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid status: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /reservations/{id}/confirm - Failed to confirm reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/confirm - Reservation confirmed successfully: reservation_id=%s, actor=%s",
		reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
