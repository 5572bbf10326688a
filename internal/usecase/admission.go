package usecase

import (
	"fmt"

	"mahal-booking/internal/data/entity"
)

const (
	reasonFullDayTaken   = "Cannot book Full Day. Other bookings exist for this date."
	reasonBlockedFullDay = "Date is blocked by Full Day booking."
	reasonMorningTaken   = "Morning slot is already booked."
	reasonEveningTaken   = "Evening slot is already booked."
)

// Admit decides whether requested fits next to existing, which must all belong
// to the same venue and day. Cancelled bookings are ignored. A nil result
// means the shift may be booked.
func Admit(existing []*entity.Booking, requested entity.Shift) *SlotConflictError {
	taken := make(map[entity.Shift]bool, len(entity.Shifts))
	for _, b := range existing {
		if b.IsActive() {
			taken[b.Shift] = true
		}
	}

	switch requested {
	case entity.ShiftFullDay:
		if len(taken) == 0 {
			return nil
		}
		return &SlotConflictError{
			Requested: requested,
			Blocking:  takenShifts(taken),
			Reason:    reasonFullDayTaken,
		}

	case entity.ShiftMorning, entity.ShiftEvening:
		if taken[entity.ShiftFullDay] {
			return &SlotConflictError{
				Requested: requested,
				Blocking:  []entity.Shift{entity.ShiftFullDay},
				Reason:    reasonBlockedFullDay,
			}
		}
		if taken[requested] {
			reason := reasonMorningTaken
			if requested == entity.ShiftEvening {
				reason = reasonEveningTaken
			}
			return &SlotConflictError{
				Requested: requested,
				Blocking:  []entity.Shift{requested},
				Reason:    reason,
			}
		}
		return nil

	default:
		return &SlotConflictError{
			Requested: requested,
			Reason:    fmt.Sprintf("Unknown shift %q.", string(requested)),
		}
	}
}

// takenShifts returns the keys of taken in calendar order.
func takenShifts(taken map[entity.Shift]bool) []entity.Shift {
	out := make([]entity.Shift, 0, len(taken))
	for _, shift := range entity.Shifts {
		if taken[shift] {
			out = append(out, shift)
		}
	}
	return out
}

// storeConflict describes a write the database rejected even though Admit
// passed. existing is a fresh read of the slot and may be empty if the
// blocking booking was cancelled in the meantime.
func storeConflict(existing []*entity.Booking, requested entity.Shift) *SlotConflictError {
	if conflict := Admit(existing, requested); conflict != nil {
		return conflict
	}

	reason := reasonFullDayTaken
	switch requested {
	case entity.ShiftMorning:
		reason = reasonMorningTaken
	case entity.ShiftEvening:
		reason = reasonEveningTaken
	}
	return &SlotConflictError{Requested: requested, Reason: reason}
}
