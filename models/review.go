package models

import "time"

// Review is a user's rating of a shop, optionally linked to the appointment
// that proves the reviewer transacted there. At most one review may exist per
// (user, appointment) pair.
type Review struct {
	ID            string    `bson:"id" json:"id"`
	ShopID        string    `bson:"shopId" json:"shopId"`
	UserID        string    `bson:"userId" json:"userId"`
	AppointmentID string    `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Rating        int       `bson:"rating" json:"rating"` // 1..5
	Comment       string    `bson:"comment,omitempty" json:"comment,omitempty"`
	IsPublished   bool      `bson:"isPublished" json:"isPublished"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SubmitReviewRequest defines the payload for creating a review.
type SubmitReviewRequest struct {
	ShopID        string `json:"shopId" binding:"required"`
	AppointmentID string `json:"appointmentId"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

// UpdateReviewRequest defines the payload for editing an existing review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
