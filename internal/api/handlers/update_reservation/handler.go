package update_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/usecase/update_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "запись не найдена"
	msgInvalidStatus      = "запись нельзя изменить в текущем статусе"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgInvalidTimeRange   = "некорректный временной диапазон"
	msgPastTime           = "время записи уже прошло"
	msgInvalidAmount      = "некорректная сумма"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID := vars["reservationId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, update_reservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, update_reservation.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id} - Invalid status: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, update_reservation.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /reservations/{id} - Slot not available: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, update_reservation.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /reservations/{id} - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, update_reservation.ErrPastTimeNotAllowed):
			h.logger.Warn("PATCH /reservations/{id} - Past time: %v", err)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, update_reservation.ErrInvalidAmount):
			h.logger.Warn("PATCH /reservations/{id} - Invalid amount: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, update_reservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated successfully: reservation_id=%s, actor=%s",
		reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
