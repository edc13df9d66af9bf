package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonhq/SLN-ReservationService/internal/domain"
	"github.com/salonhq/SLN-ReservationService/pkg/psqlbuilder"
	"github.com/salonhq/SLN-ReservationService/pkg/txmanager"
)

var bookingColumns = []string{
	"id",
	"salon_id",
	"customer_id",
	"reservation_ids",
	"total_amount",
	"discount_amount",
	"final_amount",
	"payment_method",
	"payment_status",
	"notes",
	"status",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
	"completed_at",
	"completed_by",
	"no_show_at",
	"no_show_by",
	"created_at",
	"created_by",
	"updated_at",
	"updated_by",
}

// Repository репозиторий для работы с бронями (платёжными агрегатами записей)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"salon_id",
			"customer_id",
			"reservation_ids",
			"total_amount",
			"discount_amount",
			"final_amount",
			"payment_method",
			"payment_status",
			"notes",
			"status",
			"created_by",
			"updated_by",
		).
		Values(
			b.ID,
			b.SalonID,
			b.CustomerID,
			pq.Array(b.ReservationIDs),
			b.TotalAmount,
			b.DiscountAmount,
			b.FinalAmount,
			b.PaymentMethod,
			b.PaymentStatus,
			b.Notes,
			b.Status,
			b.CreatedBy,
			b.UpdatedBy,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByCustomer получает брони клиента в салоне, сначала новые
func (r *Repository) GetByCustomer(ctx context.Context, salonID, customerID string, page domain.Pagination) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC")

	if page.Limit > 0 {
		selectBuilder = selectBuilder.Limit(page.Limit).Offset(page.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus выполняет статусный переход брони с предикатом по исходному статусу
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, actor string, at time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", actor).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	switch to {
	case domain.BookingStatusCompleted:
		updateBuilder = updateBuilder.Set("completed_at", at).Set("completed_by", actor)
	case domain.BookingStatusNoShow:
		updateBuilder = updateBuilder.Set("no_show_at", at).Set("no_show_by", actor)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return r.checkTransitionApplied(ctx, result, id, "UpdateStatus")
}

// Cancel переводит бронь в cancelled с обязательной причиной
func (r *Repository) Cancel(ctx context.Context, id, actor, reason string, at time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingStatusCancelled).
		Set("cancelled_at", at).
		Set("cancelled_by", actor).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", actor).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []domain.BookingStatus{domain.BookingStatusDraft, domain.BookingStatusConfirmed}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return r.checkTransitionApplied(ctx, result, id, "Cancel")
}

// UpdatePaymentStatus обновляет платёжный статус брони
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, actor string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", actor).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// checkTransitionApplied различает "бронь не найдена" и "статус уже изменился"
func (r *Repository) checkTransitionApplied(ctx context.Context, result sql.Result, id, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	return ErrStatusConflict
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в domain.Booking
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime
	var reservationIDs pq.StringArray

	err := row.Scan(
		&b.ID,
		&b.SalonID,
		&b.CustomerID,
		&reservationIDs,
		&b.TotalAmount,
		&b.DiscountAmount,
		&b.FinalAmount,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.Notes,
		&b.Status,
		&b.CancelledAt,
		&b.CancelledBy,
		&b.CancellationReason,
		&b.CompletedAt,
		&b.CompletedBy,
		&b.NoShowAt,
		&b.NoShowBy,
		&createdAt,
		&b.CreatedBy,
		&updatedAt,
		&b.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	b.ReservationIDs = reservationIDs
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс броней
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
