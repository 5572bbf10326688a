package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Shift is the booking granularity of a calendar day.
type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
	ShiftFullDay Shift = "Full Day"
)

// Shifts lists every shift in calendar order.
var Shifts = []Shift{ShiftMorning, ShiftEvening, ShiftFullDay}

// ParseShift accepts the stored names plus the "FullDay"/"full_day" spellings.
func ParseShift(s string) (Shift, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(normalized)

	switch normalized {
	case "morning":
		return ShiftMorning, true
	case "evening":
		return ShiftEvening, true
	case "fullday":
		return ShiftFullDay, true
	default:
		return "", false
	}
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusPending, BookingStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPartial PaymentStatus = "Partial"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial:
		return true
	}
	return false
}

const DefaultPaymentMode = "Offline - Cash"

// Booking reserves one shift of one venue on one calendar day. Date is always
// a canonical day (midnight UTC). VendorID is copied from the venue when the
// booking is admitted and never follows later ownership changes.
type Booking struct {
	Base
	VenueID       uuid.UUID     `db:"venue_id"`
	VendorID      uuid.UUID     `db:"vendor_id"`
	Date          time.Time     `db:"date"`
	Shift         Shift         `db:"shift"`
	CustomerName  string        `db:"customer_name"`
	CustomerPhone *string       `db:"customer_phone"`
	PaymentMode   string        `db:"payment_mode"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	BookingStatus BookingStatus `db:"booking_status"`
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.BookingStatus != BookingStatusCancelled
}
