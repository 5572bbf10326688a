package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"mahal-booking/internal/data/entity"
	"mahal-booking/internal/data/repository"
	"mahal-booking/pkg/lock"
	"mahal-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("connection refused")

type fakeVenues struct {
	mu     sync.Mutex
	owners map[uuid.UUID]uuid.UUID
	err    error
}

func newFakeVenues() *fakeVenues {
	return &fakeVenues{owners: make(map[uuid.UUID]uuid.UUID)}
}

func (f *fakeVenues) add(venueID, vendorID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners[venueID] = vendorID
}

func (f *fakeVenues) FindOwner(_ context.Context, venueID uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	vendorID, ok := f.owners[venueID]
	if !ok {
		return uuid.Nil, repository.ErrVenueNotFound
	}
	return vendorID, nil
}

func (f *fakeVenues) Exists(_ context.Context, venueID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.owners[venueID]
	return ok, nil
}

func (f *fakeVenues) ListIDsByVendor(_ context.Context, vendorID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uuid.UUID, 0)
	for venueID, owner := range f.owners {
		if owner == vendorID {
			ids = append(ids, venueID)
		}
	}
	return ids, nil
}

// fakeBookings is an in-memory store. With enforceSlots it rejects overlapping
// live bookings the way the database exclusion constraint does. Phantoms take
// part in that check but are never returned by reads, standing in for a row
// another instance committed after our read.
type fakeBookings struct {
	mu           sync.Mutex
	rows         []*entity.Booking
	phantoms     []*entity.Booking
	enforceSlots bool
	createErr    error
	readDelay    time.Duration
	clock        time.Time
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func overlaps(a, b entity.Shift) bool {
	return a == b || a == entity.ShiftFullDay || b == entity.ShiftFullDay
}

func (f *fakeBookings) slotTaken(b *entity.Booking) bool {
	for _, row := range append(f.rows, f.phantoms...) {
		if row.ID == b.ID || !row.IsActive() || !b.IsActive() {
			continue
		}
		if row.VenueID == b.VenueID && row.Date.Equal(b.Date) && overlaps(row.Shift, b.Shift) {
			return true
		}
	}
	return false
}

func (f *fakeBookings) Create(_ context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if f.enforceSlots && f.slotTaken(b) {
		return repository.ErrSlotTaken
	}
	b.ID = uuid.New()
	f.clock = f.clock.Add(time.Second)
	b.CreatedAt, b.UpdatedAt = f.clock, f.clock
	stored := *b
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookings) Update(_ context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.ID != b.ID {
			continue
		}
		if f.enforceSlots && f.slotTaken(b) {
			return repository.ErrSlotTaken
		}
		row.PaymentMode = b.PaymentMode
		row.PaymentStatus = b.PaymentStatus
		row.BookingStatus = b.BookingStatus
		f.clock = f.clock.Add(time.Second)
		row.UpdatedAt = f.clock
		b.UpdatedAt = f.clock
		return nil
	}
	return repository.ErrBookingNotFound
}

func (f *fakeBookings) FindActiveInRange(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	cancelled := entity.BookingStatusCancelled
	rows, err := f.List(ctx, repository.BookingFilter{VenueID: &venueID, From: &from, To: &to, ExcludeStatus: &cancelled})
	if f.readDelay > 0 {
		time.Sleep(f.readDelay)
	}
	return rows, err
}

func (f *fakeBookings) List(_ context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	owned := make(map[uuid.UUID]bool, len(filter.VendorVenueIDs))
	for _, id := range filter.VendorVenueIDs {
		owned[id] = true
	}

	out := make([]*entity.Booking, 0)
	for _, row := range f.rows {
		if filter.VenueID != nil && row.VenueID != *filter.VenueID {
			continue
		}
		if filter.VendorID != nil && row.VendorID != *filter.VendorID && !owned[row.VenueID] {
			continue
		}
		if filter.From != nil && row.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !row.Date.Before(*filter.To) {
			continue
		}
		if filter.ExcludeStatus != nil && row.BookingStatus == *filter.ExcludeStatus {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeBookings) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type failingLocker struct{}

func (failingLocker) Acquire(context.Context, string) (func(), error) {
	return nil, lock.ErrNotAcquired
}

type fixture struct {
	venues   *fakeVenues
	bookings *fakeBookings
	service  BookingService
}

func newFixture(locker lock.Locker) *fixture {
	venues := newFakeVenues()
	bookings := newFakeBookings()
	repo := &repository.Repository{Venue: venues, Booking: bookings}
	config := &utils.Config{}
	config.Booking.Location = time.UTC

	return &fixture{
		venues:   venues,
		bookings: bookings,
		service:  NewBookingService(repo, locker, config, zap.NewNop()),
	}
}
