package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mahal-booking/internal/dto/request"
	"mahal-booking/internal/dto/response"
	"mahal-booking/internal/usecase"
	"mahal-booking/pkg/middleware"
	"mahal-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.service.RequestBooking(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// ListBookings handles GET /api/bookings?venueId=&vendorId=&date=&month=&year=
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := request.ListBookingsRequest{
		VenueID:  query.Get("venueId"),
		VendorID: query.Get("vendorId"),
		Date:     query.Get("date"),
	}

	fieldErrs := make(map[string]string)
	if v := query.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			fieldErrs["month"] = "Must be a number"
		}
		req.Month = month
	}
	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			fieldErrs["year"] = "Must be a number"
		}
		req.Year = year
	}
	if len(fieldErrs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", fieldErrs)
		return
	}

	bookings, err := h.service.ListBookings(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, r, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetAvailability handles GET /api/venues/{id}/availability?date=
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"date": "This field is required"})
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), venueID, date)
	if err != nil {
		h.handleServiceError(w, r, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// ==================== ADMIN METHODS ====================

// UpdateBooking handles PUT /api/admin/bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.UpdateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", booking)
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	booking, err := h.service.CancelBooking(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, r, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// decodeBody rejects malformed JSON and fields the request type does not declare.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	log := h.log.With(
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
	)

	var (
		conflict   *usecase.SlotConflictError
		validation *usecase.ValidationError
	)

	switch {
	case errors.As(err, &conflict):
		log.Info(operation + " rejected - slot conflict")
		utils.ResponseConflict(w, conflict.Reason, response.ConflictDetail{
			Requested: conflict.Requested,
			Blocking:  conflict.Blocking,
		})

	case errors.As(err, &validation):
		log.Warn(operation + " validation failed")
		utils.ResponseBadRequest(w, "Validation failed", validation.Fields)

	case errors.Is(err, usecase.ErrVenueNotFound):
		log.Warn(operation + " failed - venue not found")
		utils.ResponseNotFound(w, "Venue not found")

	case errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation + " failed - booking not found")
		utils.ResponseNotFound(w, "Booking not found")

	case errors.Is(err, usecase.ErrStoreUnavailable):
		log.Error(operation + " failed - store unavailable")
		utils.ResponseServiceUnavailable(w, "Booking store unavailable, please retry")

	default:
		log.Error(operation + " failed")
		utils.ResponseInternalError(w, "Internal server error")
	}
}
