package get_daily_load

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/service/reservations"
)

const (
	msgInvalidQuery = "некорректные параметры запроса"
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

// Handle GET /api/v1/salons/{salonId}/load?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonID := vars["salonId"]
	date := r.URL.Query().Get("date")

	resp, err := h.service.GetDailyLoad(r.Context(), salonID, date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/load - Invalid query: salon_id=%s, date=%s", salonID, date)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /salons/{id}/load - Failed to get daily load: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/load - Daily load retrieved: salon_id=%s, date=%s, count=%d",
		salonID, resp.Date, resp.ReservationCount)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
