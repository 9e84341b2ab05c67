// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/domain/service"
)

// publishWrite announces a store write to the fan-out. The write has already been
// committed, so a publish failure is logged and never returned to the caller.
func publishWrite(
	ctx context.Context,
	publisher service.EventPublisher,
	logger *slog.Logger,
	collection, documentID string,
	kind service.DocumentEventKind,
	before, after any,
) {
	event, err := service.NewDocumentEvent(collection, documentID, kind, before, after)
	if err != nil {
		logger.Error("Failed to build document event",
			slog.String("collection", collection),
			slog.String("documentID", documentID),
			slog.Any("error", err))

		return
	}
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := publisher.PublishDocumentEvent(ctx, event); err != nil {
		logger.Error("Failed to publish document event",
			slog.String("eventID", event.EventID),
			slog.String("collection", collection),
			slog.String("documentID", documentID),
			slog.Any("error", err))

		return
	}

	logger.Debug("Document event published",
		slog.String("eventID", event.EventID),
		slog.String("collection", collection),
		slog.String("kind", string(kind)))
}
