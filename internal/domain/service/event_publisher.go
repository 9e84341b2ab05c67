package service

import (
	"context"
	"encoding/json"
	"time"

	"friendlocator/internal/errors"

	"github.com/google/uuid"
)

// DocumentEventKind is the kind of write that produced a DocumentEvent.
type DocumentEventKind string

const (
	DocumentCreated DocumentEventKind = "create"
	DocumentUpdated DocumentEventKind = "update"
	DocumentDeleted DocumentEventKind = "delete"
)

// DocumentEvent describes one write to the document store. Before and After hold the
// JSON encoding of the document on each side of the write and are empty when the
// document did not exist on that side.
type DocumentEvent struct {
	EventID    string            `json:"event_id"`
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	Collection string            `json:"collection"`
	DocumentID string            `json:"document_id"`
	Kind       DocumentEventKind `json:"kind"`
	Before     json.RawMessage   `json:"before,omitempty"`
	After      json.RawMessage   `json:"after,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewDocumentEvent builds an event for a write on collection/documentID. before or
// after may be nil.
func NewDocumentEvent(collection, documentID string, kind DocumentEventKind, before, after any) (*DocumentEvent, error) {
	event := &DocumentEvent{
		EventID:    uuid.NewString(),
		Collection: collection,
		DocumentID: documentID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}

	var err error
	if before != nil {
		if event.Before, err = json.Marshal(before); err != nil {
			return nil, errors.Wrap(err, "marshal before")
		}
	}
	if after != nil {
		if event.After, err = json.Marshal(after); err != nil {
			return nil, errors.Wrap(err, "marshal after")
		}
	}

	return event, nil
}

// DecodeBefore unmarshals the pre-write document into dst. It returns false when the
// document did not exist before the write.
func (e *DocumentEvent) DecodeBefore(dst any) (bool, error) {
	return decodeSide(e.Before, dst)
}

// DecodeAfter unmarshals the post-write document into dst. It returns false when the
// document no longer exists after the write.
func (e *DocumentEvent) DecodeAfter(dst any) (bool, error) {
	return decodeSide(e.After, dst)
}

func decodeSide(raw json.RawMessage, dst any) (bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, errors.WithStack(err)
	}

	return true, nil
}

// EventPublisher defines the interface for publishing document events to a message queue
type EventPublisher interface {
	// PublishDocumentEvent publishes a document event for asynchronous fan-out
	PublishDocumentEvent(ctx context.Context, event *DocumentEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

// EventDeduper remembers which (event, trigger) pairs were already handled so that a
// re-delivered event does not notify twice.
type EventDeduper interface {
	// FirstDelivery records the pair and reports whether it had not been seen before.
	FirstDelivery(ctx context.Context, eventID, trigger string) (bool, error)
}
