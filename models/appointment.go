package models

import "time"

// Appointment statuses. Completed and canceled are terminal.
const (
	StatusPendingUserConfirmation     = "pending_user_confirmation"
	StatusPendingBusinessConfirmation = "pending_business_confirmation"
	StatusConfirmed                   = "confirmed"
	StatusCompleted                   = "completed"
	StatusCanceled                    = "canceled"
)

// ActiveStatuses are the non-terminal, non-canceled statuses that hold a slot.
var ActiveStatuses = []string{
	StatusPendingUserConfirmation,
	StatusPendingBusinessConfirmation,
	StatusConfirmed,
}

// Appointment is the unit of a booking. It is created only by the booking
// service and mutated only through lifecycle transitions; cancellation is a
// status change, never a delete.
type Appointment struct {
	ID                string     `bson:"id" json:"id"`
	UserID            string     `bson:"userId" json:"userId"`
	ShopID            string     `bson:"shopId" json:"shopId"`
	ServiceID         string     `bson:"serviceId" json:"serviceId"`
	StaffID           string     `bson:"staffId" json:"staffId"`
	Date              time.Time  `bson:"date" json:"date"` // start instant (UTC)
	TimeSlot          string     `bson:"timeSlot" json:"timeSlot"`
	EndTime           time.Time  `bson:"endTime" json:"endTime"`
	Price             float64    `bson:"price" json:"price"`
	Notes             string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Status            string     `bson:"status" json:"status"`
	UserConfirmed     bool       `bson:"userConfirmed" json:"userConfirmed"`
	BusinessConfirmed bool       `bson:"businessConfirmed" json:"businessConfirmed"`
	CancelReason      string     `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CanceledAt        *time.Time `bson:"canceledAt,omitempty" json:"canceledAt,omitempty"`
	CompletedAt       *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the appointment still holds its slot.
func (a *Appointment) IsActive() bool {
	switch a.Status {
	case StatusPendingUserConfirmation, StatusPendingBusinessConfirmation, StatusConfirmed:
		return true
	}
	return false
}

// DateKey returns the availability-record day key for the appointment.
func (a *Appointment) DateKey() string {
	return a.Date.UTC().Format("2006-01-02")
}

// BookRequest is the input for creating a new appointment.
type BookRequest struct {
	UserID    string `json:"userId"`
	ShopID    string `json:"shopId" binding:"required"`
	ServiceID string `json:"serviceId" binding:"required"`
	StaffID   string `json:"staffId"`
	Date      string `json:"date" binding:"required"` // "2006-01-02"
	Time      string `json:"time" binding:"required"` // "15:04"
	Notes     string `json:"notes"`
}
