package transfer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"grocery-share/internal/apperr"
	"grocery-share/internal/logging"
	"grocery-share/internal/models"
)

// Protocol is the transfer state machine. Messages move pending → accepted
// or pending → rejected and never leave a terminal state; resolving an
// already-terminal message fails with ErrAlreadyResolved rather than
// silently succeeding, so callers can tell double-clicks from real races.
type Protocol struct {
	store Store
	log   logging.Logger
}

func NewProtocol(store Store, log logging.Logger) *Protocol {
	return &Protocol{store: store, log: log}
}

// Send records a transfer of item from fromUID to toUID and returns the
// message id. Fire-and-forget from the sender's perspective: success means
// the message is durably recorded, not that the recipient saw it. The
// payload is a snapshot; mutating the item afterwards does not affect a
// message already in flight.
func (p *Protocol) Send(ctx context.Context, fromUID, toUID string, item *models.GroceryItem) (string, error) {
	if fromUID == "" || toUID == "" {
		return "", fmt.Errorf("%w: send requires both sender and recipient uids", apperr.ErrInvalidArgument)
	}
	if item == nil {
		return "", fmt.Errorf("%w: send requires an item", apperr.ErrInvalidArgument)
	}
	if item.Name == "" {
		return "", fmt.Errorf("%w: item name is required", apperr.ErrInvalidArgument)
	}

	msg := &models.ItemMessage{
		FromUID: fromUID,
		ToUID:   toUID,
		Payload: snapshotPayload(item),
	}
	id, err := p.store.Create(ctx, msg)
	if err != nil {
		return "", err
	}
	p.log.Info(ctx, "transfer message sent", "message_id", id, "from_uid", fromUID, "to_uid", toUID)
	return id, nil
}

// BatchFailure identifies the first item whose send failed.
type BatchFailure struct {
	Index  int    `json:"index"`
	ItemID string `json:"item_id"`
	Error  string `json:"error"`

	err error
}

func (f *BatchFailure) Unwrap() error { return f.err }

// BatchResult reports which sends succeeded before any failure. Already
// durable messages are never rolled back.
type BatchResult struct {
	MessageIDs []string      `json:"message_ids"`
	Failure    *BatchFailure `json:"failure,omitempty"`
}

// SendBatch applies Send to each item sequentially, preserving input order.
// Each send is an independent durable write with no cross-item transaction:
// on the first failure the result reports how far it got and stops.
func (p *Protocol) SendBatch(ctx context.Context, fromUID, toUID string, items []*models.GroceryItem) BatchResult {
	var result BatchResult
	for i, item := range items {
		id, err := p.Send(ctx, fromUID, toUID, item)
		if err != nil {
			itemID := ""
			if item != nil {
				itemID = item.ID
			}
			result.Failure = &BatchFailure{Index: i, ItemID: itemID, Error: err.Error(), err: err}
			p.log.Warn(ctx, "batch send stopped on failure",
				"index", i, "item_id", itemID, "sent", len(result.MessageIDs), "error", err)
			return result
		}
		result.MessageIDs = append(result.MessageIDs, id)
	}
	return result
}

// ListPending returns the recipient's poll-on-demand inbox.
func (p *Protocol) ListPending(ctx context.Context, recipientUID string) ([]models.ItemMessage, error) {
	if recipientUID == "" {
		return nil, fmt.Errorf("%w: recipient uid is required", apperr.ErrInvalidArgument)
	}
	return p.store.ListPending(ctx, recipientUID)
}

// Accept resolves the message in the recipient's favor: a new item owned by
// recipientUID is created from the payload and the message becomes
// accepted. Only the addressed recipient may call it.
func (p *Protocol) Accept(ctx context.Context, messageID, recipientUID string) (*models.GroceryItem, error) {
	msg, err := p.load(ctx, messageID, recipientUID)
	if err != nil {
		return nil, err
	}

	newItem := &models.GroceryItem{
		ID:              uuid.NewString(),
		OwnerUID:        recipientUID,
		Name:            msg.Payload.Name,
		ImageURL:        cloneString(msg.Payload.ImageURL),
		WebsiteURL:      cloneString(msg.Payload.WebsiteURL),
		Completed:       false,
		OriginMessageID: &msg.ID,
		OriginFromUID:   &msg.FromUID,
	}

	ok, err := p.store.AcceptAndCopy(ctx, msg.ID, newItem)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: message %s", apperr.ErrAlreadyResolved, msg.ID)
	}
	p.log.Info(ctx, "transfer accepted", "message_id", msg.ID, "item_id", newItem.ID, "to_uid", recipientUID)
	return newItem, nil
}

// Reject resolves the message against the sender's proposal. No item is
// created.
func (p *Protocol) Reject(ctx context.Context, messageID, recipientUID string) error {
	msg, err := p.load(ctx, messageID, recipientUID)
	if err != nil {
		return err
	}

	ok, err := p.store.MarkRejected(ctx, msg.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: message %s", apperr.ErrAlreadyResolved, msg.ID)
	}
	p.log.Info(ctx, "transfer rejected", "message_id", msg.ID, "to_uid", recipientUID)
	return nil
}

// load fetches the message and runs the checks shared by accept and reject.
// The terminal-status check here is a fast path only; the conditional update
// in the store is what guards against races.
func (p *Protocol) load(ctx context.Context, messageID, recipientUID string) (*models.ItemMessage, error) {
	if messageID == "" || recipientUID == "" {
		return nil, fmt.Errorf("%w: message id and recipient uid are required", apperr.ErrInvalidArgument)
	}
	msg, err := p.store.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.ToUID != recipientUID {
		return nil, fmt.Errorf("%w: message %s is not addressed to the caller", apperr.ErrForbidden, messageID)
	}
	if msg.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: message %s is %s", apperr.ErrAlreadyResolved, messageID, msg.Status)
	}
	return msg, nil
}

func snapshotPayload(item *models.GroceryItem) models.MessagePayload {
	payload := models.MessagePayload{
		Name:       item.Name,
		ImageURL:   cloneString(item.ImageURL),
		WebsiteURL: cloneString(item.WebsiteURL),
	}
	if item.ID != "" {
		id := item.ID
		payload.OriginalItemID = &id
	}
	return payload
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
