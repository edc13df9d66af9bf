package create_reservation

import (
	"errors"
	"net/http"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "мастер не найден"
	msgStaffNotWorking     = "мастер не работает в этот день"
	msgOutsideWorkingHours = "время записи вне рабочих часов мастера"
	msgInvalidTimeRange    = "некорректный временной диапазон"
	msgPastTime            = "время записи уже прошло"
	msgInvalidAmount       = "некорректная сумма"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем запись
	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, create_reservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, create_reservation.ErrStaffNotFound):
			h.logger.Warn("POST /reservations - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, create_reservation.ErrStaffNotWorking):
			h.logger.Warn("POST /reservations - Staff not working: staff_id=%s", req.StaffID)
			handlers.RespondConflict(w, msgStaffNotWorking)

		case errors.Is(err, create_reservation.ErrOutsideWorkingHours):
			h.logger.Warn("POST /reservations - Outside working hours: staff_id=%s", req.StaffID)
			handlers.RespondConflict(w, msgOutsideWorkingHours)

		case errors.Is(err, create_reservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: staff_id=%s, start=%s",
				req.StaffID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, create_reservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /reservations - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, create_reservation.ErrPastTimeNotAllowed):
			h.logger.Warn("POST /reservations - Past time: %v", err)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, create_reservation.ErrInvalidAmount):
			h.logger.Warn("POST /reservations - Invalid amount: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, create_reservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: id=%s, actor=%s", resp.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
