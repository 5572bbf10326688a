package repository

import (
	"context"
	"errors"
	"fmt"

	"mahal-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// VenueRepository is the read-only venue directory used by booking admission.
type VenueRepository interface {
	FindOwner(ctx context.Context, venueID uuid.UUID) (uuid.UUID, error)
	Exists(ctx context.Context, venueID uuid.UUID) (bool, error)
	ListIDsByVendor(ctx context.Context, vendorID uuid.UUID) ([]uuid.UUID, error)
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

func (r *venueRepository) FindOwner(ctx context.Context, venueID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT vendor_id FROM venues WHERE id = $1`

	var vendorID uuid.UUID
	err := r.db.QueryRow(ctx, query, venueID).Scan(&vendorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrVenueNotFound
	}
	if err != nil {
		r.log.Error("Failed to find venue owner",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return uuid.Nil, fmt.Errorf("find owner of venue %s: %w", venueID.String(), err)
	}

	return vendorID, nil
}

func (r *venueRepository) Exists(ctx context.Context, venueID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, venueID).Scan(&exists); err != nil {
		r.log.Error("Failed to check venue existence",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return false, fmt.Errorf("check venue %s exists: %w", venueID.String(), err)
	}

	return exists, nil
}

func (r *venueRepository) ListIDsByVendor(ctx context.Context, vendorID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM venues WHERE vendor_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		r.log.Error("Failed to list venues by vendor",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return nil, fmt.Errorf("list venues of vendor %s: %w", vendorID.String(), err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan venue id", zap.Error(err))
			return nil, fmt.Errorf("scan venue id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues of vendor %s: %w", vendorID.String(), err)
	}

	return ids, nil
}
