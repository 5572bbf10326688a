package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mahal-booking/internal/data/entity"
	"mahal-booking/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter is a conjunction of optional predicates. VendorID matches a
// booking whose vendor_id equals it or whose venue is in VendorVenueIDs.
// To is exclusive.
type BookingFilter struct {
	VenueID        *uuid.UUID
	VendorID       *uuid.UUID
	VendorVenueIDs []uuid.UUID
	From           *time.Time
	To             *time.Time
	ExcludeStatus  *entity.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindActiveInRange(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
}

var bookingColumns = []string{
	"id",
	"venue_id",
	"vendor_id",
	"date",
	"shift",
	"customer_name",
	"customer_phone",
	"payment_mode",
	"payment_status",
	"booking_status",
	"created_at",
	"updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query := `
		INSERT INTO bookings (id, venue_id, vendor_id, date, shift, customer_name, customer_phone,
		                      payment_mode, payment_status, booking_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.ID,
		booking.VenueID,
		booking.VendorID,
		booking.Date,
		string(booking.Shift),
		booking.CustomerName,
		booking.CustomerPhone,
		booking.PaymentMode,
		string(booking.PaymentStatus),
		string(booking.BookingStatus),
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if isSlotViolation(err) {
		r.log.Warn("Booking rejected by slot constraint",
			zap.String("venue_id", booking.VenueID.String()),
			zap.Time("date", booking.Date),
			zap.String("shift", string(booking.Shift)),
		)
		return fmt.Errorf("create booking for venue %s: %w", booking.VenueID.String(), ErrSlotTaken)
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("venue_id", booking.VenueID.String()),
			zap.String("shift", string(booking.Shift)),
		)
		return fmt.Errorf("create booking for venue %s: %w", booking.VenueID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find booking query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// Update writes the administrative fields. Identity fields never change.
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET payment_mode = $2, payment_status = $3, booking_status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.ID,
		booking.PaymentMode,
		string(booking.PaymentStatus),
		string(booking.BookingStatus),
	).Scan(&booking.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBookingNotFound
	}
	if isSlotViolation(err) {
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), ErrSlotTaken)
	}
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindActiveInRange(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	cancelled := entity.BookingStatusCancelled
	return r.List(ctx, BookingFilter{
		VenueID:       &venueID,
		From:          &from,
		To:            &to,
		ExcludeStatus: &cancelled,
	})
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list bookings query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// buildListQuery renders filter as a SELECT ordered by day. Ids are passed as
// strings because squirrel expands array-typed values into IN lists.
func buildListQuery(filter BookingFilter) (string, []any, error) {
	builder := psql.Select(bookingColumns...).From("bookings")

	if filter.VenueID != nil {
		builder = builder.Where(sq.Eq{"venue_id": filter.VenueID.String()})
	}
	if filter.VendorID != nil {
		byVendor := sq.Or{sq.Eq{"vendor_id": filter.VendorID.String()}}
		if len(filter.VendorVenueIDs) > 0 {
			byVendor = append(byVendor, sq.Eq{"venue_id": uuidStrings(filter.VendorVenueIDs)})
		}
		builder = builder.Where(byVendor)
	}

	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(sq.Lt{"date": *filter.To})
	}
	if filter.ExcludeStatus != nil {
		builder = builder.Where(sq.NotEq{"booking_status": string(*filter.ExcludeStatus)})
	}

	return builder.OrderBy("date ASC", "created_at ASC", "id ASC").ToSql()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.VenueID,
		&booking.VendorID,
		&booking.Date,
		&booking.Shift,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.PaymentMode,
		&booking.PaymentStatus,
		&booking.BookingStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = booking.Date.UTC()
	return &booking, nil
}
