package model

import "time"

// Catalog item statuses. A freshly submitted item starts at new and is
// reviewed into pending, then accepted or rejected. The last two are
// terminal.
const (
	VideoStatusNew      = "new"
	VideoStatusPending  = "pending"
	VideoStatusAccepted = "accepted"
	VideoStatusRejected = "rejected"
)

// Video is a catalog item in the `videos` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique display name.
//  Status      – review status ('new','pending','accepted','rejected').
//  Description – free-form description.
//  MediaURL    – reference to the stored media file.
//  CreatedAt   – timestamp of creation.
type Video struct {
	ID          uint64    `json:"id"`          // videos.id
	Name        string    `json:"name"`        // videos.name
	Status      string    `json:"status"`      // videos.status
	Description string    `json:"description"` // videos.description
	MediaURL    string    `json:"media_url"`   // videos.media_url
	CreatedAt   time.Time `json:"created_at"`  // videos.created_at
}
