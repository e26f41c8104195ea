package booking

import "errors"

// Expected booking outcomes. All are recoverable from the customer's point of
// view; only infrastructure failures surface as wrapped errors.
var (
	// ErrSlotTaken means the reservation race was lost; the customer should
	// pick another time.
	ErrSlotTaken = errors.New("time slot was just taken")
	// ErrNotBookable means the day or time was never published as bookable.
	ErrNotBookable = errors.New("time slot is not bookable")
	// ErrUserConflict means the requesting user already holds an active
	// appointment overlapping this window at this shop.
	ErrUserConflict = errors.New("user already has an overlapping appointment at this shop")
	// ErrStaffConflict means the staff member is already booked for an
	// overlapping window.
	ErrStaffConflict = errors.New("staff member is already booked for this window")
	// ErrServiceNotFound means the shop does not offer the requested service.
	ErrServiceNotFound = errors.New("service not found in shop catalog")
	// ErrInvalidRequest means the date or time in the request cannot be parsed.
	ErrInvalidRequest = errors.New("invalid booking request")
)
