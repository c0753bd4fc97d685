// Package statevents notifies downstream consumers when a directive changed
// the reported properties of an endpoint.
package statevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/devicecontract"
)

// Publisher publishes state-change events
type Publisher interface {
	Publish(ctx context.Context, payload devicecontract.EventPayload) error
}

// SQSClient is the interface for SQS operations
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher publishes events to a single SQS queue
type SQSPublisher struct {
	client   SQSClient
	queueURL string
}

// NewSQSPublisher creates a new SQSPublisher
func NewSQSPublisher(client SQSClient, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// Publish sends payload to the queue
func (p *SQSPublisher) Publish(ctx context.Context, payload devicecontract.EventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

// NoOpPublisher discards events. It is used when no queue is configured.
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(ctx context.Context, payload devicecontract.EventPayload) error {
	return nil
}

// FromResponse builds the state-change event for a successful control
// response. ok is false when the response reports no properties or is an
// error.
func FromResponse(event alexa.Event, resp *alexa.Response, userID string, now time.Time) (payload devicecontract.EventPayload, ok bool) {
	if resp == nil || resp.IsError() || resp.Context == nil || len(resp.Context.Properties) == 0 {
		return devicecontract.EventPayload{}, false
	}

	endpointID := event.EndpointID()
	if resp.Event.Endpoint != nil && resp.Event.Endpoint.EndpointID != "" {
		endpointID = resp.Event.Endpoint.EndpointID
	}

	return devicecontract.EventPayload{
		EventType:  devicecontract.EventTypeStateChanged,
		OccurredAt: now.UTC().Format(time.RFC3339),
		UserID:     userID,
		EndpointID: endpointID,
		MessageID:  event.Directive.Header.MessageID,
		Properties: resp.Context.Properties,
	}, true
}
