package update_payment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/SLN-ReservationService/internal/api/handlers"
	"github.com/salonhq/SLN-ReservationService/internal/api/middleware"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings"
	"github.com/salonhq/SLN-ReservationService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgInvalidPayment     = "неизвестный платёжный статус"
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

// UpdatePaymentStatusRequest HTTP request model
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// Handle PATCH /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.UpdatePaymentStatus(r.Context(), bookingID, &models.UpdatePaymentStatusRequest{
		ActorID:       actorID,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/payment - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidPaymentStatus):
			h.logger.Warn("PATCH /bookings/{id}/payment - Invalid payment status: %s", req.PaymentStatus)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		default:
			h.logger.Error("PATCH /bookings/{id}/payment - Failed to update payment status: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/payment - Payment status updated: booking_id=%s, status=%s, actor=%s",
		bookingID, req.PaymentStatus, actorID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
