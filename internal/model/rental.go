package model

import "time"

// Rental statuses. A rental starts at new, is acknowledged into pending
// and finishes as returned; it can be cancelled from either non-terminal
// state. Returned and cancelled are terminal.
const (
	RentalStatusNew       = "new"
	RentalStatusPending   = "pending"
	RentalStatusReturned  = "returned"
	RentalStatusCancelled = "cancelled"
)

// Rental records a user borrowing a catalog item. ReturnDate is set
// exactly once, on the transition into returned.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – renting user.
//  VideoID    – rented catalog item.
//  RentalDate – date the rental takes effect.
//  ReturnDate – date the item came back (nullable).
//  Status     – rental status ('new','pending','returned','cancelled').
//  CreatedAt  – timestamp of creation.
type Rental struct {
	ID         uint64    `json:"id"`                    // rentals.id
	UserID     uint64    `json:"user_id"`               // rentals.user_id
	VideoID    uint64    `json:"video_id"`              // rentals.video_id
	RentalDate string    `json:"rental_date"`           // rentals.rental_date (YYYY-MM-DD)
	ReturnDate *string   `json:"return_date,omitempty"` // rentals.return_date (nullable)
	Status     string    `json:"status"`                // rentals.status
	CreatedAt  time.Time `json:"created_at"`            // rentals.created_at
}
