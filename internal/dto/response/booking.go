package response

import (
	"time"

	"mahal-booking/internal/data/entity"
	"mahal-booking/pkg/utils"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	VenueID       string               `json:"venueId"`
	VendorID      string               `json:"vendorId"`
	Date          string               `json:"date"`
	Shift         entity.Shift         `json:"shift"`
	CustomerName  string               `json:"customerName"`
	CustomerPhone *string              `json:"customerPhone,omitempty"`
	PaymentMode   string               `json:"paymentMode"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	BookingStatus entity.BookingStatus `json:"bookingStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// AvailabilityResponse tells, per shift, whether a new booking would be admitted.
type AvailabilityResponse struct {
	VenueID string `json:"venueId"`
	Date    string `json:"date"`
	Morning bool   `json:"morning"`
	Evening bool   `json:"evening"`
	FullDay bool   `json:"fullDay"`
}

// ConflictDetail is the errors payload of a 409 response.
type ConflictDetail struct {
	Requested entity.Shift   `json:"requested"`
	Blocking  []entity.Shift `json:"blocking"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		VenueID:       b.VenueID.String(),
		VendorID:      b.VendorID.String(),
		Date:          utils.FormatDay(b.Date),
		Shift:         b.Shift,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		PaymentMode:   b.PaymentMode,
		PaymentStatus: b.PaymentStatus,
		BookingStatus: b.BookingStatus,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) BookingListResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return BookingListResponse{Bookings: out}
}
