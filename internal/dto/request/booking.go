package request

import "strings"

type CreateBookingRequest struct {
	VenueID       string  `json:"venueId" validate:"required,uuid"`
	Date          string  `json:"date" validate:"required"`
	Shift         string  `json:"shift"`
	CustomerName  string  `json:"customerName" validate:"required,min=1,max=120"`
	CustomerPhone *string `json:"customerPhone,omitempty" validate:"omitempty,max=32"`
	PaymentMode   string  `json:"paymentMode,omitempty" validate:"omitempty,max=64"`
	PaymentStatus string  `json:"paymentStatus,omitempty" validate:"omitempty,oneof=Pending Paid Partial"`
}

// Normalize trims free-text fields so that blank values fail validation.
func (r *CreateBookingRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.PaymentMode = strings.TrimSpace(r.PaymentMode)
	if r.CustomerPhone != nil {
		phone := strings.TrimSpace(*r.CustomerPhone)
		r.CustomerPhone = &phone
	}
}

// ListBookingsRequest mirrors the list query string. Month and Year must be
// given together; Date takes precedence over them.
type ListBookingsRequest struct {
	VenueID  string `json:"venueId" validate:"omitempty,uuid"`
	VendorID string `json:"vendorId" validate:"omitempty,uuid"`
	Date     string `json:"date"`
	Month    int    `json:"month" validate:"omitempty,min=1,max=12"`
	Year     int    `json:"year" validate:"omitempty,min=1970,max=9999"`
}

// UpdateBookingRequest carries the administrative fields. Nil means unchanged.
type UpdateBookingRequest struct {
	BookingStatus *string `json:"bookingStatus,omitempty" validate:"omitempty,oneof=Confirmed Pending Cancelled"`
	PaymentStatus *string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=Pending Paid Partial"`
	PaymentMode   *string `json:"paymentMode,omitempty" validate:"omitempty,min=1,max=64"`
}

func (r *UpdateBookingRequest) Normalize() {
	if r.PaymentMode != nil {
		mode := strings.TrimSpace(*r.PaymentMode)
		r.PaymentMode = &mode
	}
}
