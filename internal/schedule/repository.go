package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)

	// ListVendor returns a vendor's entries, optionally limited to windows
	// intersecting [from, to). Rejected entries are excluded entirely.
	ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Entry, error)

	// ListResource is the per-resource variant used by the conflict engine's
	// schedule source.
	ListResource(ctx context.Context, resourceID string, resourceType fleet.ResourceType, from, to *time.Time) ([]*Entry, error)

	// ListBlocking returns only accepted/completed entries for the resource,
	// unbounded in time.
	ListBlocking(ctx context.Context, resourceID string, resourceType fleet.ResourceType) ([]*Entry, error)

	// Accept transitions a pending entry to accepted. The conflict check is
	// re-run inside the writing transaction, after locking the resource row,
	// so two concurrent accepts for an overlapping window cannot both commit.
	Accept(ctx context.Context, e *Entry) error

	Reject(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const entryColumns = "id, resource_id, resource_type, vendor_id, start_time, end_time, booking_ref, status, created_at, updated_at"

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	if err := row.Scan(
		&e.ID, &e.ResourceID, &e.ResourceType, &e.VendorID,
		&e.StartTime, &e.EndTime, &e.BookingRef, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.schedule_entries").
		Columns("resource_id", "resource_type", "vendor_id", "start_time", "end_time", "booking_ref", "status").
		Values(e.ResourceID, e.ResourceType, e.VendorID, e.StartTime, e.EndTime, e.BookingRef, e.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create schedule entry query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("create schedule entry failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	query := fmt.Sprintf("SELECT %s FROM public.schedule_entries WHERE id = $1", entryColumns)

	e, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schedule entry failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) list(ctx context.Context, where squirrel.Sqlizer, from, to *time.Time) ([]*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(entryColumns).
		From("public.schedule_entries").
		Where(where).
		Where(squirrel.NotEq{"status": StatusRejected})

	// Range filter uses intersection logic so an entry spanning the boundary
	// still shows up.
	if from != nil {
		query = query.Where(squirrel.Gt{"end_time": *from})
	}
	if to != nil {
		query = query.Where(squirrel.Lt{"start_time": *to})
	}

	query = query.OrderBy("start_time")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list schedule entries query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedule entries failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule entry failed: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *pgxRepository) ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Entry, error) {
	return r.list(ctx, squirrel.Eq{"vendor_id": vendorID}, from, to)
}

func (r *pgxRepository) ListResource(ctx context.Context, resourceID string, resourceType fleet.ResourceType, from, to *time.Time) ([]*Entry, error) {
	return r.list(ctx, squirrel.Eq{"resource_id": resourceID, "resource_type": resourceType}, from, to)
}

func (r *pgxRepository) ListBlocking(ctx context.Context, resourceID string, resourceType fleet.ResourceType) ([]*Entry, error) {
	return r.list(ctx, squirrel.Eq{
		"resource_id":   resourceID,
		"resource_type": resourceType,
		"status":        []Status{StatusAccepted, StatusCompleted},
	}, nil, nil)
}

func (r *pgxRepository) Accept(ctx context.Context, e *Entry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin accept tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize writers on the resource row before re-checking.
	if _, err := tx.Exec(ctx, `SELECT id FROM public.resources WHERE id = $1 FOR UPDATE`, e.ResourceID); err != nil {
		return fmt.Errorf("lock resource failed: %w", err)
	}

	conflicts, err := blockingInTx(ctx, tx, e.ResourceID, e.ResourceType, e.StartTime, e.EndTime)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &availability.ConflictError{Conflicts: conflicts}
	}

	ct, err := tx.Exec(ctx, `
		UPDATE public.schedule_entries
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, StatusAccepted, e.ID, StatusPending)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("accept schedule entry failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotPending
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit accept tx failed: %w", err)
	}

	e.Status = StatusAccepted
	return nil
}

func (r *pgxRepository) Reject(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE public.schedule_entries
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, StatusRejected, id, StatusPending)
	if err != nil {
		return fmt.Errorf("reject schedule entry failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotPending
	}
	return nil
}

// blockingInTx collects every record that blocks [start, end) for the
// resource, reading through the given transaction.
func blockingInTx(ctx context.Context, tx pgx.Tx, resourceID string, resourceType fleet.ResourceType, start, end time.Time) ([]availability.Conflict, error) {
	var conflicts []availability.Conflict

	rows, err := tx.Query(ctx, `
		SELECT id, start_time, end_time, booking_ref
		FROM public.schedule_entries
		WHERE resource_id = $1 AND resource_type = $2
		  AND status IN ('accepted', 'completed')
		  AND start_time < $4 AND end_time > $3
	`, resourceID, resourceType, start, end)
	if err != nil {
		return nil, fmt.Errorf("re-check schedule overlap failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c := availability.Conflict{
			Kind:         availability.KindBooking,
			ResourceID:   resourceID,
			ResourceType: resourceType,
		}
		var ref string
		if err := rows.Scan(&c.ID, &c.Start, &c.End, &ref); err != nil {
			return nil, fmt.Errorf("scan schedule overlap failed: %w", err)
		}
		c.Label = "Booking " + ref
		conflicts = append(conflicts, c)
	}

	blackoutRows, err := tx.Query(ctx, `
		SELECT id, start_time, end_time, reason
		FROM public.unavailability_periods
		WHERE resource_id = $1 AND resource_type = $2
		  AND start_time < $4 AND end_time > $3
	`, resourceID, resourceType, start, end)
	if err != nil {
		return nil, fmt.Errorf("re-check blackout overlap failed: %w", err)
	}
	defer blackoutRows.Close()

	for blackoutRows.Next() {
		c := availability.Conflict{
			Kind:         availability.KindBlackout,
			ResourceID:   resourceID,
			ResourceType: resourceType,
		}
		if err := blackoutRows.Scan(&c.ID, &c.Start, &c.End, &c.Label); err != nil {
			return nil, fmt.Errorf("scan blackout overlap failed: %w", err)
		}
		conflicts = append(conflicts, c)
	}

	return conflicts, nil
}
