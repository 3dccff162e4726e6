// Package domain holds the core chat types shared by every layer:
// messages, quick actions, and the agent streaming contract.
package domain

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageStatus tracks a message through its lifecycle. Terminal statuses
// (complete, errored) freeze the message: content and status never change
// afterwards. Only a streaming message may be mutated, and only by
// appending to its content.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusStreaming MessageStatus = "streaming"
	StatusComplete  MessageStatus = "complete"
	StatusErrored   MessageStatus = "errored"
)

// Terminal reports whether the status freezes the message.
func (s MessageStatus) Terminal() bool {
	return s == StatusComplete || s == StatusErrored
}

// Message is a single entry in the conversation log. IDs are unique ULIDs,
// so insertion order equals chronological order.
type Message struct {
	ID         string        `json:"id"`
	Role       Role          `json:"role"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"created_at"`
	Status     MessageStatus `json:"status"`
	FailReason string        `json:"fail_reason,omitempty"` // set once when Status becomes errored
}
