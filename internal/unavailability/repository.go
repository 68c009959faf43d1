package unavailability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

type Repository interface {
	// Create inserts the period after re-checking, inside the writing
	// transaction, that no accepted schedule entry overlaps the window.
	// A booking commitment always wins over a blackout declaration.
	Create(ctx context.Context, p *Period) error

	GetByID(ctx context.Context, id string) (*Period, error)
	ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Period, error)
	ListResource(ctx context.Context, resourceID string, resourceType fleet.ResourceType) ([]*Period, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const periodColumns = "id, resource_id, resource_type, vendor_id, start_time, end_time, reason, notes, created_at"

func scanPeriod(row pgx.Row) (*Period, error) {
	var p Period
	if err := row.Scan(
		&p.ID, &p.ResourceID, &p.ResourceType, &p.VendorID,
		&p.StartTime, &p.EndTime, &p.Reason, &p.Notes, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Period) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create period tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize against concurrent accepts on the same resource.
	if _, err := tx.Exec(ctx, `SELECT id FROM public.resources WHERE id = $1 FOR UPDATE`, p.ResourceID); err != nil {
		return fmt.Errorf("lock resource failed: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, start_time, end_time, booking_ref
		FROM public.schedule_entries
		WHERE resource_id = $1 AND resource_type = $2
		  AND status IN ('accepted', 'completed')
		  AND start_time < $4 AND end_time > $3
	`, p.ResourceID, p.ResourceType, p.StartTime, p.EndTime)
	if err != nil {
		return fmt.Errorf("re-check schedule overlap failed: %w", err)
	}
	defer rows.Close()

	var conflicts []availability.Conflict
	for rows.Next() {
		c := availability.Conflict{
			Kind:         availability.KindBooking,
			ResourceID:   p.ResourceID,
			ResourceType: p.ResourceType,
		}
		var ref string
		if err := rows.Scan(&c.ID, &c.Start, &c.End, &ref); err != nil {
			return fmt.Errorf("scan schedule overlap failed: %w", err)
		}
		c.Label = "Booking " + ref
		conflicts = append(conflicts, c)
	}
	rows.Close()

	if len(conflicts) > 0 {
		return &availability.ConflictError{Conflicts: conflicts}
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO public.unavailability_periods (resource_id, resource_type, vendor_id, start_time, end_time, reason, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, p.ResourceID, p.ResourceType, p.VendorID, p.StartTime, p.EndTime, p.Reason, p.Notes).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create unavailability period failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create period tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Period, error) {
	query := fmt.Sprintf("SELECT %s FROM public.unavailability_periods WHERE id = $1", periodColumns)

	p, err := scanPeriod(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get unavailability period failed: %w", err)
	}
	return p, nil
}

func (r *pgxRepository) list(ctx context.Context, where squirrel.Sqlizer, from, to *time.Time) ([]*Period, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(periodColumns).
		From("public.unavailability_periods").
		Where(where)

	if from != nil {
		query = query.Where(squirrel.Gt{"end_time": *from})
	}
	if to != nil {
		query = query.Where(squirrel.Lt{"start_time": *to})
	}

	query = query.OrderBy("start_time")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list periods query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list unavailability periods failed: %w", err)
	}
	defer rows.Close()

	var periods []*Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unavailability period failed: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, nil
}

func (r *pgxRepository) ListVendor(ctx context.Context, vendorID string, from, to *time.Time) ([]*Period, error) {
	return r.list(ctx, squirrel.Eq{"vendor_id": vendorID}, from, to)
}

func (r *pgxRepository) ListResource(ctx context.Context, resourceID string, resourceType fleet.ResourceType) ([]*Period, error) {
	return r.list(ctx, squirrel.Eq{"resource_id": resourceID, "resource_type": resourceType}, nil, nil)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.unavailability_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unavailability period failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
