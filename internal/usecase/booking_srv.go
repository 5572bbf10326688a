package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mahal-booking/internal/data/entity"
	"mahal-booking/internal/data/repository"
	"mahal-booking/internal/dto/request"
	"mahal-booking/internal/dto/response"
	"mahal-booking/pkg/lock"
	"mahal-booking/pkg/metrics"
	"mahal-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Admission
	RequestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Queries
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.BookingListResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetAvailability(ctx context.Context, venueID, date string) (*response.AvailabilityResponse, error)

	// Admin endpoints
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	locker   lock.Locker
	loc      *time.Location
	lockWait time.Duration
	log      *zap.Logger
}

const defaultLockWait = 10 * time.Second

func NewBookingService(repo *repository.Repository, locker lock.Locker, config *utils.Config, log *zap.Logger) BookingService {
	loc := time.UTC
	lockWait := defaultLockWait
	if config != nil {
		if config.Booking.Location != nil {
			loc = config.Booking.Location
		}
		if config.Booking.LockTTL > 0 {
			lockWait = config.Booking.LockTTL
		}
	}

	return &bookingService{
		repo:     repo,
		locker:   locker,
		loc:      loc,
		lockWait: lockWait,
		log:      log.With(zap.String("service", "booking")),
	}
}

// slotKey names the lock guarding one venue for one calendar day.
func slotKey(venueID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("booking:slot:%s:%s", venueID.String(), utils.FormatDay(day))
}

// lockSlot waits at most lockWait for the slot of venueID on day.
func (s *bookingService) lockSlot(ctx context.Context, venueID uuid.UUID, day time.Time) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()
	return s.locker.Acquire(waitCtx, slotKey(venueID, day))
}

const shiftOptions = "Must be one of: Morning, Evening, Full Day"

func (s *bookingService) RequestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	shiftLabel := "unknown"

	// Validate request
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		metrics.IncAdmission(shiftLabel, metrics.OutcomeInvalid)
		return nil, newValidationError(errs, nil)
	}

	shift, ok := entity.ParseShift(req.Shift)
	if !ok {
		metrics.IncAdmission(shiftLabel, metrics.OutcomeInvalid)
		return nil, newValidationError(map[string]string{"shift": shiftOptions}, ErrInvalidShift)
	}
	shiftLabel = string(shift)

	day, err := utils.ParseDay(req.Date, s.loc)
	if err != nil {
		metrics.IncAdmission(shiftLabel, metrics.OutcomeInvalid)
		return nil, newValidationError(map[string]string{"date": "Must be a date in 2006-01-02 format"}, ErrInvalidDate)
	}

	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		metrics.IncAdmission(shiftLabel, metrics.OutcomeInvalid)
		return nil, newValidationError(map[string]string{"venueId": "Must be a valid UUID"}, err)
	}

	paymentStatus := entity.PaymentStatusPending
	if req.PaymentStatus != "" {
		paymentStatus = entity.PaymentStatus(req.PaymentStatus)
	}
	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = entity.DefaultPaymentMode
	}

	// Resolve owner before any write
	vendorID, err := s.repo.Venue.FindOwner(ctx, venueID)
	if errors.Is(err, repository.ErrVenueNotFound) {
		s.log.Warn("Booking requested for unknown venue", zap.String("venue_id", venueID.String()))
		metrics.IncAdmission(shiftLabel, metrics.OutcomeVenueNotFound)
		return nil, fmt.Errorf("venue %s: %w", venueID.String(), ErrVenueNotFound)
	}
	if err != nil {
		metrics.IncAdmission(shiftLabel, metrics.OutcomeStoreError)
		return nil, storeError("resolve venue owner", err)
	}

	release, err := s.lockSlot(ctx, venueID, day)
	if err != nil {
		s.log.Error("Failed to acquire slot lock",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
			zap.String("date", utils.FormatDay(day)),
		)
		metrics.IncAdmission(shiftLabel, metrics.OutcomeStoreError)
		return nil, storeError("acquire slot lock", err)
	}
	defer release()

	lockedAt := time.Now()
	defer func() {
		metrics.ObserveAdmissionDuration(time.Since(lockedAt).Seconds())
	}()

	from, to := utils.DayWindow(day)
	existing, err := s.repo.Booking.FindActiveInRange(ctx, venueID, from, to)
	if err != nil {
		metrics.IncAdmission(shiftLabel, metrics.OutcomeStoreError)
		return nil, storeError("read slot", err)
	}

	if conflict := Admit(existing, shift); conflict != nil {
		s.log.Info("Booking rejected",
			zap.String("venue_id", venueID.String()),
			zap.String("date", utils.FormatDay(day)),
			zap.String("shift", shiftLabel),
			zap.String("reason", conflict.Reason),
		)
		metrics.IncAdmission(shiftLabel, metrics.OutcomeConflict)
		return nil, conflict
	}

	booking := &entity.Booking{
		VenueID:       venueID,
		VendorID:      vendorID,
		Date:          day,
		Shift:         shift,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMode:   paymentMode,
		PaymentStatus: paymentStatus,
		BookingStatus: entity.BookingStatusConfirmed,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			metrics.IncAdmission(shiftLabel, metrics.OutcomeConflict)
			fresh, readErr := s.repo.Booking.FindActiveInRange(ctx, venueID, from, to)
			if readErr != nil {
				fresh = nil
			}
			return nil, storeConflict(fresh, shift)
		}
		metrics.IncAdmission(shiftLabel, metrics.OutcomeStoreError)
		return nil, storeError("create booking", err)
	}

	metrics.IncAdmission(shiftLabel, metrics.OutcomeAdmitted)
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("venue_id", venueID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("date", utils.FormatDay(day)),
		zap.String("shift", shiftLabel),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.BookingListResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List bookings validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs, nil)
	}

	var filter repository.BookingFilter

	if req.VenueID != "" {
		venueID, err := uuid.Parse(req.VenueID)
		if err != nil {
			return nil, newValidationError(map[string]string{"venueId": "Must be a valid UUID"}, err)
		}
		filter.VenueID = &venueID
	}

	if req.VendorID != "" {
		vendorID, err := uuid.Parse(req.VendorID)
		if err != nil {
			return nil, newValidationError(map[string]string{"vendorId": "Must be a valid UUID"}, err)
		}
		venueIDs, err := s.repo.Venue.ListIDsByVendor(ctx, vendorID)
		if err != nil {
			return nil, storeError("list vendor venues", err)
		}
		filter.VendorID = &vendorID
		filter.VendorVenueIDs = venueIDs
	}

	switch {
	case req.Date != "":
		day, err := utils.ParseDay(req.Date, s.loc)
		if err != nil {
			return nil, newValidationError(map[string]string{"date": "Must be a date in 2006-01-02 format"}, ErrInvalidDate)
		}
		from, to := utils.DayWindow(day)
		filter.From, filter.To = &from, &to

	case req.Month != 0 || req.Year != 0:
		if req.Month == 0 || req.Year == 0 {
			return nil, newValidationError(map[string]string{
				"month": "Month and year must be given together",
				"year":  "Month and year must be given together",
			}, nil)
		}
		from, to := utils.MonthWindow(req.Year, time.Month(req.Month))
		filter.From, filter.To = &from, &to
	}

	bookings, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		return nil, storeError("list bookings", err)
	}

	resp := response.BookingsToResponse(bookings)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, newValidationError(map[string]string{"id": "Must be a valid UUID"}, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}
	if err != nil {
		return nil, storeError("get booking", err)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetAvailability(ctx context.Context, venueID, date string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, newValidationError(map[string]string{"venueId": "Must be a valid UUID"}, err)
	}

	day, err := utils.ParseDay(date, s.loc)
	if err != nil {
		return nil, newValidationError(map[string]string{"date": "Must be a date in 2006-01-02 format"}, ErrInvalidDate)
	}

	exists, err := s.repo.Venue.Exists(ctx, id)
	if err != nil {
		return nil, storeError("check venue", err)
	}
	if !exists {
		return nil, fmt.Errorf("venue %s: %w", venueID, ErrVenueNotFound)
	}

	from, to := utils.DayWindow(day)
	existing, err := s.repo.Booking.FindActiveInRange(ctx, id, from, to)
	if err != nil {
		return nil, storeError("read slot", err)
	}

	return &response.AvailabilityResponse{
		VenueID: id.String(),
		Date:    utils.FormatDay(day),
		Morning: Admit(existing, entity.ShiftMorning) == nil,
		Evening: Admit(existing, entity.ShiftEvening) == nil,
		FullDay: Admit(existing, entity.ShiftFullDay) == nil,
	}, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs, nil)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, newValidationError(map[string]string{"id": "Must be a valid UUID"}, err)
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reactivation takes the slot again, so it goes through admission.
	if req.BookingStatus != nil && !booking.IsActive() && entity.BookingStatus(*req.BookingStatus) != entity.BookingStatusCancelled {
		release, err := s.lockSlot(ctx, booking.VenueID, booking.Date)
		if err != nil {
			return nil, storeError("acquire slot lock", err)
		}
		defer release()

		// Re-read under the lock.
		booking, err = s.findBooking(ctx, id)
		if err != nil {
			return nil, err
		}

		from, to := utils.DayWindow(booking.Date)
		existing, err := s.repo.Booking.FindActiveInRange(ctx, booking.VenueID, from, to)
		if err != nil {
			return nil, storeError("read slot", err)
		}
		if conflict := Admit(excludeBooking(existing, booking.ID), booking.Shift); conflict != nil {
			s.log.Info("Booking reactivation rejected",
				zap.String("booking_id", bookingID),
				zap.String("reason", conflict.Reason),
			)
			return nil, conflict
		}
	}

	previous := booking.BookingStatus
	if req.BookingStatus != nil {
		booking.BookingStatus = entity.BookingStatus(*req.BookingStatus)
	}
	if req.PaymentStatus != nil {
		booking.PaymentStatus = entity.PaymentStatus(*req.PaymentStatus)
	}
	if req.PaymentMode != nil {
		booking.PaymentMode = *req.PaymentMode
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
		case errors.Is(err, repository.ErrSlotTaken):
			from, to := utils.DayWindow(booking.Date)
			fresh, readErr := s.repo.Booking.FindActiveInRange(ctx, booking.VenueID, from, to)
			if readErr != nil {
				fresh = nil
			}
			return nil, storeConflict(fresh, booking.Shift)
		default:
			return nil, storeError("update booking", err)
		}
	}

	if previous != booking.BookingStatus {
		metrics.IncStatusChange(string(previous), string(booking.BookingStatus))
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("booking_status", string(booking.BookingStatus)),
		zap.String("payment_status", string(booking.PaymentStatus)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	cancelled := string(entity.BookingStatusCancelled)
	return s.UpdateBooking(ctx, bookingID, &request.UpdateBookingRequest{BookingStatus: &cancelled})
}

func (s *bookingService) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return nil, fmt.Errorf("booking %s: %w", id.String(), ErrBookingNotFound)
	}
	if err != nil {
		return nil, storeError("get booking", err)
	}
	return booking, nil
}

func excludeBooking(bookings []*entity.Booking, id uuid.UUID) []*entity.Booking {
	out := make([]*entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
