package complete_reservation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "запись не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidStatus      = "запись нельзя завершить в текущем статусе"
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

// Handle PATCH /api/v1/reservations/{reservationId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: завершение без actualEndTime - обычный случай
	var req CompleteReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Complete(r.Context(), reservationID, req.ToServiceRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrServiceNotFound):
			h.logger.Warn("PATCH /reservations/{id}/complete - Service not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/complete - Invalid status: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /reservations/{id}/complete - Failed to complete reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/complete - Reservation completed successfully: reservation_id=%s, overtime=%d",
		reservationID, resp.OvertimeAmount)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
