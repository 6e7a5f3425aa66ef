package repository

import (
	"context"
	"errors"
	"fmt"

	"theatre-booking/internal/data/entity"
	"theatre-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PerformanceRepository interface {
	Create(ctx context.Context, performance *entity.Performance) error
	Update(ctx context.Context, performance *entity.Performance) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindAllSummaries(ctx context.Context) ([]*entity.PerformanceSummary, error)
	FindSummaryByID(ctx context.Context, id int64) (*entity.PerformanceSummary, error)
	FindSummariesByIDs(ctx context.Context, ids []int64) (map[int64]*entity.PerformanceSummary, error)
	FindHallTx(ctx context.Context, q database.Querier, performanceID int64) (*entity.TheatreHall, error)
}

type performanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPerformanceRepository(db database.PgxIface, log *zap.Logger) PerformanceRepository {
	return &performanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "performance")),
	}
}

// summarySelect computes availability as hall capacity minus sold tickets in
// the same statement that loads the performance.
const summarySelect = `
	SELECT p.id, p.play_id, p.theatre_hall_id, p.show_time,
	       pl.title,
	       h.id, h.name, h.rows, h.seats_in_row,
	       h.rows::bigint * h.seats_in_row - COUNT(t.id) AS tickets_available
	FROM performances p
	JOIN plays pl ON pl.id = p.play_id
	JOIN theatre_halls h ON h.id = p.theatre_hall_id
	LEFT JOIN tickets t ON t.performance_id = p.id
`

const summaryGroupBy = `
	GROUP BY p.id, pl.id, h.id
`

func (r *performanceRepository) Create(ctx context.Context, performance *entity.Performance) error {
	query := `
		INSERT INTO performances (play_id, theatre_hall_id, show_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		performance.PlayID,
		performance.TheatreHallID,
		performance.ShowTime,
	).Scan(&performance.ID)

	if IsForeignKeyViolation(err) {
		return fmt.Errorf("create performance: %w: %w", ErrReferenceNotFound, err)
	}
	if err != nil {
		r.log.Error("Failed to create performance",
			zap.Error(err),
			zap.Int64("play_id", performance.PlayID),
			zap.Int64("theatre_hall_id", performance.TheatreHallID),
		)
		return fmt.Errorf("create performance: %w", err)
	}

	return nil
}

// Update reports false when the performance does not exist.
func (r *performanceRepository) Update(ctx context.Context, performance *entity.Performance) (bool, error) {
	query := `
		UPDATE performances
		SET play_id = $2, theatre_hall_id = $3, show_time = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		performance.ID,
		performance.PlayID,
		performance.TheatreHallID,
		performance.ShowTime,
	)
	if IsForeignKeyViolation(err) {
		return false, fmt.Errorf("update performance %d: %w: %w", performance.ID, ErrReferenceNotFound, err)
	}
	if err != nil {
		r.log.Error("Failed to update performance", zap.Error(err), zap.Int64("id", performance.ID))
		return false, fmt.Errorf("update performance %d: %w", performance.ID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *performanceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM performances WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete performance", zap.Error(err), zap.Int64("id", id))
		return false, fmt.Errorf("delete performance %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *performanceRepository) FindAllSummaries(ctx context.Context) ([]*entity.PerformanceSummary, error) {
	query := summarySelect + summaryGroupBy + `
	ORDER BY p.show_time DESC, p.id
	`

	return r.querySummaries(ctx, "find all performances", query)
}

func (r *performanceRepository) FindSummaryByID(ctx context.Context, id int64) (*entity.PerformanceSummary, error) {
	query := summarySelect + `
	WHERE p.id = $1
	` + summaryGroupBy

	summary, err := scanSummary(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find performance by ID", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("find performance by ID %d: %w", id, err)
	}

	return summary, nil
}

func (r *performanceRepository) FindSummariesByIDs(ctx context.Context, ids []int64) (map[int64]*entity.PerformanceSummary, error) {
	result := make(map[int64]*entity.PerformanceSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := summarySelect + `
	WHERE p.id = ANY($1)
	` + summaryGroupBy

	summaries, err := r.querySummaries(ctx, "find performances by IDs", query, ids)
	if err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		result[summary.ID] = summary
	}

	return result, nil
}

// FindHallTx resolves the hall a performance takes place in, reading through
// the caller's transaction. It returns (nil, nil) when the performance is missing.
func (r *performanceRepository) FindHallTx(ctx context.Context, q database.Querier, performanceID int64) (*entity.TheatreHall, error) {
	query := `
		SELECT h.id, h.name, h.rows, h.seats_in_row
		FROM performances p
		JOIN theatre_halls h ON h.id = p.theatre_hall_id
		WHERE p.id = $1
	`

	var hall entity.TheatreHall
	err := q.QueryRow(ctx, query, performanceID).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Rows,
		&hall.SeatsInRow,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall for performance",
			zap.Error(err),
			zap.Int64("performance_id", performanceID),
		)
		return nil, fmt.Errorf("find hall for performance %d: %w", performanceID, err)
	}

	return &hall, nil
}

func (r *performanceRepository) querySummaries(ctx context.Context, op, query string, args ...any) ([]*entity.PerformanceSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query performances", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var summaries []*entity.PerformanceSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			r.log.Error("Failed to scan performance row", zap.Error(err))
			return nil, fmt.Errorf("scan performance row: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return summaries, nil
}

func scanSummary(row pgx.Row) (*entity.PerformanceSummary, error) {
	var s entity.PerformanceSummary
	err := row.Scan(
		&s.ID,
		&s.PlayID,
		&s.TheatreHallID,
		&s.ShowTime,
		&s.PlayTitle,
		&s.Hall.ID,
		&s.Hall.Name,
		&s.Hall.Rows,
		&s.Hall.SeatsInRow,
		&s.TicketsAvailable,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
