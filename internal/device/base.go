package device

import (
	"maps"

	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

// Base binds a device to the event it was created for and builds response
// envelopes for that event. Concrete devices embed it.
type Base struct {
	event         alexa.Event
	asyncResponse bool
}

// Option configures a Base
type Option func(*Base)

// WithAsyncResponse echoes the full inbound endpoint (scope and cookie) in
// responses instead of just its id.
func WithAsyncResponse() Option {
	return func(b *Base) {
		b.asyncResponse = true
	}
}

// NewBase binds a Base to event
func NewBase(event alexa.Event, opts ...Option) Base {
	b := Base{event: event}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Event returns the event the device is bound to
func (b *Base) Event() alexa.Event {
	return b.event
}

// ResponseHeader builds the header of a response to the bound directive
func (b *Base) ResponseHeader(name string) alexa.Header {
	in := b.event.Directive.Header
	return alexa.Header{
		Namespace:        alexa.NamespaceAlexa,
		Name:             name,
		MessageID:        in.MessageID + "-R",
		PayloadVersion:   alexa.PayloadVersion,
		CorrelationToken: in.CorrelationToken,
	}
}

// ResponseEndpoint returns the endpoint to echo in a response
func (b *Base) ResponseEndpoint() *alexa.DirectiveEndpoint {
	in := b.event.Directive.Endpoint
	if in == nil {
		return &alexa.DirectiveEndpoint{}
	}
	if !b.asyncResponse {
		return &alexa.DirectiveEndpoint{EndpointID: in.EndpointID}
	}

	out := &alexa.DirectiveEndpoint{
		EndpointID: in.EndpointID,
		Cookie:     maps.Clone(in.Cookie),
	}
	if in.Scope != nil {
		scope := *in.Scope
		out.Scope = &scope
	}
	return out
}

// Response builds a successful response with an empty payload
func (b *Base) Response() *alexa.Response {
	return &alexa.Response{
		Event: alexa.ResponseEvent{
			Header:   b.ResponseHeader(alexa.NameResponse),
			Endpoint: b.ResponseEndpoint(),
			Payload:  map[string]any{},
		},
	}
}

// ErrorResponse builds an ErrorResponse of the given type
func (b *Base) ErrorResponse(errType, message string) *alexa.Response {
	return &alexa.Response{
		Event: alexa.ResponseEvent{
			Header:   b.ResponseHeader(alexa.NameErrorResponse),
			Endpoint: b.ResponseEndpoint(),
			Payload:  alexa.ErrorPayload{Type: errType, Message: message},
		},
	}
}

// ErrorResponseWith builds an ErrorResponse whose payload carries extra
// fields, e.g. validRange for VALUE_OUT_OF_RANGE.
func (b *Base) ErrorResponseWith(errType, message string, extra map[string]any) *alexa.Response {
	payload := make(map[string]any, len(extra)+2)
	maps.Copy(payload, extra)
	payload["type"] = errType
	payload["message"] = message

	return &alexa.Response{
		Event: alexa.ResponseEvent{
			Header:   b.ResponseHeader(alexa.NameErrorResponse),
			Endpoint: b.ResponseEndpoint(),
			Payload:  payload,
		},
	}
}
