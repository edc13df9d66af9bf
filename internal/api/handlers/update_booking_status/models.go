package update_booking_status

// UpdateBookingStatusRequest HTTP request model.
// Допустимые целевые статусы: confirmed, completed, no_show.
// Отмена выполняется отдельной операцией с обязательной причиной.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}
