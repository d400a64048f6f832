package mysql

import (
	"context"
	"database/sql"

	"basha_price/internal/domain"
)

// Repo persists served estimates. The pipeline treats every write as
// best-effort; only reads surface errors to callers.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertEstimate(ctx context.Context, e domain.Estimate) error {
	_, err := r.db.ExecContext(ctx, insertEstimateSQL,
		e.City,
		e.Location,
		e.Bedrooms,
		e.Bathrooms,
		e.FloorArea,
		e.FloorNo,
		e.Price,
	)
	return err
}

func (r *Repo) ListEstimates(ctx context.Context, limit int) ([]domain.Estimate, error) {
	rows, err := r.db.QueryContext(ctx, listEstimatesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Estimate
	for rows.Next() {
		var e domain.Estimate
		if err := rows.Scan(
			&e.ID,
			&e.City,
			&e.Location,
			&e.Bedrooms,
			&e.Bathrooms,
			&e.FloorArea,
			&e.FloorNo,
			&e.Price,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
