package reservation

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

// exclusionViolation код ошибки PostgreSQL при нарушении exclusion constraint
// (см. migrations/001_init.sql, constraint reservations_no_overlap)
const exclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"salon_id",
	"customer_id",
	"staff_id",
	"service_id",
	"start_time",
	"end_time",
	"service_name",
	"total_amount",
	"deposit_amount",
	"paid",
	"notes",
	"status",
	"confirmed_at",
	"confirmed_by",
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

// Repository репозиторий для работы с записями (reservations)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте есть активная транзакция (txmanager), выполняется внутри неё.
// Нарушение exclusion constraint по интервалу мастера возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"salon_id",
			"customer_id",
			"staff_id",
			"service_id",
			"start_time",
			"end_time",
			"service_name",
			"total_amount",
			"deposit_amount",
			"paid",
			"notes",
			"status",
			"confirmed_at",
			"confirmed_by",
			"created_by",
			"updated_by",
		).
		Values(
			res.ID,
			res.SalonID,
			res.CustomerID,
			res.StaffID,
			res.ServiceID,
			res.StartTime,
			res.EndTime,
			res.ServiceName,
			res.TotalAmount,
			res.DepositAmount,
			res.Paid,
			res.Notes,
			res.Status,
			res.ConfirmedAt,
			res.ConfirmedBy,
			res.CreatedBy,
			res.UpdatedBy,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolation {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Update обновляет изменяемые атрибуты записи (время, заметки, суммы).
// Статусные переходы выполняются отдельными методами.
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("notes", res.Notes).
		Set("total_amount", res.TotalAmount).
		Set("deposit_amount", res.DepositAmount).
		Set("paid", res.Paid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", res.UpdatedBy).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolation {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// Confirm переводит запись из pending в confirmed.
// Предикат по статусу защищает от конкурентного перехода: 0 затронутых строк
// при существующей записи означает, что статус уже изменился.
func (r *Repository) Confirm(ctx context.Context, id, actor string, at time.Time) error {
	return r.transition(ctx, id, domain.StatusPending, map[string]interface{}{
		"status":       domain.StatusConfirmed,
		"confirmed_at": at,
		"confirmed_by": actor,
		"updated_by":   actor,
	})
}

// Cancel переводит запись в cancelled с обязательной причиной
func (r *Repository) Cancel(ctx context.Context, id, actor, reason string, at time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", at).
		Set("cancelled_by", actor).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", actor).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed}}).
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

// Complete переводит запись из confirmed в completed
func (r *Repository) Complete(ctx context.Context, id, actor string, at time.Time) error {
	return r.transition(ctx, id, domain.StatusConfirmed, map[string]interface{}{
		"status":       domain.StatusCompleted,
		"completed_at": at,
		"completed_by": actor,
		"updated_by":   actor,
	})
}

// MarkNoShow фиксирует неявку клиента
func (r *Repository) MarkNoShow(ctx context.Context, id, actor string, at time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusNoShow).
		Set("no_show_at", at).
		Set("no_show_by", actor).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", actor).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNoShow - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNoShow - execute update: %v", ErrExecQuery, err)
	}

	return r.checkTransitionApplied(ctx, result, id, "MarkNoShow")
}

// Search ищет записи по фильтру с пагинацией.
// Результат отсортирован по времени начала по убыванию (сначала новые).
func (r *Repository) Search(ctx context.Context, filter domain.ReservationFilter, page domain.Pagination) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.SalonID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"salon_id": *filter.SalonID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.TerminalStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("start_time DESC")

	if page.Limit > 0 {
		selectBuilder = selectBuilder.Limit(page.Limit).Offset(page.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByStaffAndDateRange получает записи мастера, чьи интервалы пересекают
// [from, to). Возвращаются только записи в статусах, занимающих слот
// (отменённые освобождают его). Внутри транзакции строки блокируются
// FOR UPDATE (защита от двойного бронирования в usecase создания записи).
func (r *Repository) GetByStaffAndDateRange(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SlotOccupyingStatuses)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CheckTimeSlotConflict проверяет, пересекается ли интервал [start, end)
// с какой-либо занимающей слот записью мастера. excludeID исключает из
// проверки саму обновляемую запись.
func (r *Repository) CheckTimeSlotConflict(ctx context.Context, staffID string, start, end time.Time, excludeID *string) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"status": statusStrings(domain.SlotOccupyingStatuses)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CheckTimeSlotConflict - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: CheckTimeSlotConflict - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// CountByDate подсчитывает записи салона с началом в указанный день
func (r *Repository) CountByDate(ctx context.Context, salonID string, date time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.GtOrEq{"start_time": dayStart}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// transition выполняет статусный переход с предикатом по исходному статусу
func (r *Repository) transition(ctx context.Context, id string, from domain.ReservationStatus, set map[string]interface{}) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	for column, value := range set {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: transition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: transition - execute update: %v", ErrExecQuery, err)
	}

	return r.checkTransitionApplied(ctx, result, id, "transition")
}

// checkTransitionApplied различает "запись не найдена" и "статус уже изменился"
// когда статусный UPDATE не затронул ни одной строки
func (r *Repository) checkTransitionApplied(ctx context.Context, result sql.Result, id, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	return ErrStatusConflict
}

// statusStrings конвертирует статусы в строки для IN/NOT IN условий squirrel
func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в domain.Reservation
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.SalonID,
		&res.CustomerID,
		&res.StaffID,
		&res.ServiceID,
		&res.StartTime,
		&res.EndTime,
		&res.ServiceName,
		&res.TotalAmount,
		&res.DepositAmount,
		&res.Paid,
		&res.Notes,
		&res.Status,
		&res.ConfirmedAt,
		&res.ConfirmedBy,
		&res.CancelledAt,
		&res.CancelledBy,
		&res.CancellationReason,
		&res.CompletedAt,
		&res.CompletedBy,
		&res.NoShowAt,
		&res.NoShowBy,
		&createdAt,
		&res.CreatedBy,
		&updatedAt,
		&res.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс записей
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
