package devicecontract

import "github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"

// EventTypeStateChanged is sent after a directive changed reported properties
const EventTypeStateChanged = "endpoint.stateChanged"

// EventPayload represents a state-change notification sent to the state event queue
type EventPayload struct {
	EventType  string           `json:"eventType"`  // Event type identifier (e.g., "endpoint.stateChanged")
	OccurredAt string           `json:"occurredAt"` // RFC 3339 timestamp when the directive completed
	UserID     string           `json:"userId,omitempty"`
	EndpointID string           `json:"endpointId"`
	MessageID  string           `json:"messageId"` // Inbound directive message id
	Properties []alexa.Property `json:"properties"`
}
