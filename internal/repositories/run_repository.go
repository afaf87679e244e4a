package repositories

import (
	"context"
	"fmt"
	"time"

	"shipvoid-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RunRepository struct {
	DB *pgxpool.Pool
}

func NewRunRepository(db *pgxpool.Pool) *RunRepository {
	return &RunRepository{DB: db}
}

// Create records one reconciliation run
func (r *RunRepository) Create(ctx context.Context, run *models.ReconciliationRun) error {
	query := `
		INSERT INTO reconciliation_runs (
			id, dc, shipvoid_file, legacy_file, total, inhouse, crossdock,
			at_risk_count, potential_cost, timeline_mismatches, history_found,
			error, load_time, duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10, $11, $12, $13, $14)
	`

	id, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", run.ID, err)
	}

	_, err = r.DB.Exec(ctx, query,
		id, run.DC, run.ShipvoidFile, run.LegacyFile, run.Total, run.InHouse, run.CrossDock,
		run.AtRiskCount, run.PotentialCost.String(), run.TimelineMismatches, run.HistoryFound,
		run.Error, run.LoadTime, run.DurationMs,
	)
	return err
}

// ListRecent returns the latest runs, newest first
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]models.ReconciliationRun, error) {
	query := `
		SELECT id::text, dc, shipvoid_file, legacy_file, total, inhouse, crossdock,
		       at_risk_count, potential_cost::text, timeline_mismatches, history_found,
		       error, load_time, duration_ms
		FROM reconciliation_runs
		ORDER BY load_time DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.ReconciliationRun{}
	for rows.Next() {
		var run models.ReconciliationRun
		var cost string
		if err := rows.Scan(
			&run.ID, &run.DC, &run.ShipvoidFile, &run.LegacyFile, &run.Total, &run.InHouse, &run.CrossDock,
			&run.AtRiskCount, &cost, &run.TimelineMismatches, &run.HistoryFound,
			&run.Error, &run.LoadTime, &run.DurationMs,
		); err != nil {
			return nil, err
		}
		run.PotentialCost, err = decimal.NewFromString(cost)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteBefore removes runs loaded before the cutoff and returns how many
func (r *RunRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM reconciliation_runs WHERE load_time < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
