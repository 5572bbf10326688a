package wire

import (
	"mahal-booking/internal/adaptor"
	"mahal-booking/pkg/middleware"
	"mahal-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Request a booking (admission)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - List bookings by venue, vendor, date or month
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/bookings/{id} - Booking details
		r.Get("/{id}", bookingHandler.GetBookingByID)
	})

	// GET /api/venues/{id}/availability?date= - Free shifts for one day
	r.Get("/api/venues/{id}/availability", bookingHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AdminToken(config.Admin.Token, log))

		// PUT /api/admin/bookings/{id} - Update status, payment status or mode
		r.Put("/{id}", bookingHandler.UpdateBooking)

		// PUT /api/admin/bookings/{id}/cancel - Cancel a booking
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
