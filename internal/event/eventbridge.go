package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

// EventBridgeAPI is the subset of *eventbridge.Client the publisher uses.
type EventBridgeAPI interface {
	PutEvents(ctx context.Context, in *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// EventBridgePublisher publishes trip deletions to an EventBridge bus.
type EventBridgePublisher struct {
	client  EventBridgeAPI
	busName string
}

// NewEventBridgePublisher constructs a publisher that writes to busName.
func NewEventBridgePublisher(client EventBridgeAPI, busName string) *EventBridgePublisher {
	return &EventBridgePublisher{client: client, busName: busName}
}

// PublishTripDeleted sends e as a single PutEvents entry. PutEvents reports
// per-entry failures in the response rather than as an error, so a rejected
// entry is turned into an error here.
func (p *EventBridgePublisher) PublishTripDeleted(ctx context.Context, e TripDeleted) error {
	detail, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("event.EventBridgePublisher: marshal: %w", err)
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(p.busName),
			Source:       aws.String(Source),
			DetailType:   aws.String(DetailTypeDeleted),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(e.OccurredAt),
		}},
	})
	if err != nil {
		return fmt.Errorf("event.EventBridgePublisher: put events: %w", err)
	}
	if out.FailedEntryCount > 0 && len(out.Entries) > 0 {
		entry := out.Entries[0]
		return fmt.Errorf("event.EventBridgePublisher: entry rejected: %s: %s",
			aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage))
	}
	return nil
}
