package model

import "time"

// Message is a support message written by a user. Threads are
// single-level: one optional staff reply per message, overwritten on
// subsequent replies.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – posting user.
//  Message    – user's text.
//  AdminReply – staff reply text (nullable until replied).
//  CreatedAt  – timestamp of creation.
type Message struct {
	ID         uint64    `json:"id"`          // messages.id
	UserID     uint64    `json:"user_id"`     // messages.user_id
	Message    string    `json:"message"`     // messages.message
	AdminReply *string   `json:"admin_reply"` // messages.admin_reply (nullable)
	CreatedAt  time.Time `json:"created_at"`  // messages.created_at
}

// MessageWithUser joins a message with the posting user's display name
// for the staff inbox view.
type MessageWithUser struct {
	Message
	Username string `json:"username"` // users.username of the author
}
