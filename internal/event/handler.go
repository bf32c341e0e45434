package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

// Handler consumes TripDeleted events delivered by EventBridge to Lambda.
type Handler struct {
	runner Runner
	log    *slog.Logger
}

// NewHandler constructs a Handler that runs each deletion through runner.
func NewHandler(runner Runner, log *slog.Logger) *Handler {
	return &Handler{runner: runner, log: log}
}

// HandleEvent runs the cascade once for a TripDeleted event. Other detail
// types are acknowledged and ignored. A returned error fails the invocation,
// which leaves retries and dead-lettering to the Lambda runtime.
func (h *Handler) HandleEvent(ctx context.Context, ev events.CloudWatchEvent) error {
	if ev.DetailType != DetailTypeDeleted {
		h.log.InfoContext(ctx, "skipping event", "event_id", ev.ID, "detail_type", ev.DetailType)
		return nil
	}

	var detail TripDeleted
	if err := json.Unmarshal(ev.Detail, &detail); err != nil {
		h.log.ErrorContext(ctx, "failed to decode event detail", "event_id", ev.ID, "error", err)
		return fmt.Errorf("event.Handler: decode detail: %w", err)
	}

	h.log.InfoContext(ctx, "deleting subcollections for trip",
		"event_id", ev.ID,
		"trip_id", detail.TripID,
		"user_id", detail.UserID,
	)
	return h.runner.Run(ctx, detail.Path())
}
