package models

import "time"

// Message lifecycle. Status is monotonic: once accepted or rejected it never
// reverts to pending and never switches to the other terminal state.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// MessagePayload is the point-in-time copy of the item being offered.
// Mutating the original item after sending does not affect a payload already
// in flight. OriginalItemID is kept for traceability only, never as a live
// reference.
type MessagePayload struct {
	Name           string  `json:"name" db:"name"`
	ImageURL       *string `json:"image_url,omitempty" db:"image_url"`
	WebsiteURL     *string `json:"website_url,omitempty" db:"website_url"`
	OriginalItemID *string `json:"original_item_id,omitempty" db:"original_item_id"`
}

// ItemMessage is a durable, one-way proposal to copy one list item from a
// sender's list into a recipient's list. Rows are never deleted; terminal
// messages remain as an audit trail.
type ItemMessage struct {
	ID         string         `json:"id" db:"id"`
	FromUID    string         `json:"from_uid" db:"from_uid"`
	ToUID      string         `json:"to_uid" db:"to_uid"`
	Payload    MessagePayload `json:"payload"`
	Status     string         `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	AcceptedAt *time.Time     `json:"accepted_at,omitempty" db:"accepted_at"`
	RejectedAt *time.Time     `json:"rejected_at,omitempty" db:"rejected_at"`
}

// SnapshotRecord is one write-once archive copy of a list item.
type SnapshotRecord struct {
	ID             string    `json:"id" db:"id"`
	OriginalItemID string    `json:"original_item_id" db:"original_item_id"`
	OwnerUID       string    `json:"owner_uid" db:"owner_uid"`
	Payload        []byte    `json:"payload" db:"payload"`
	MigratedAt     time.Time `json:"migrated_at" db:"migrated_at"`
}

type SendMessageRequest struct {
	ToUID  string `json:"to_uid" validate:"required"`
	ItemID string `json:"item_id" validate:"required"`
}

type SendBatchRequest struct {
	ToUID   string   `json:"to_uid" validate:"required"`
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,required"`
}
