package alexa

// Response is returned to the voice platform for both control and discovery
// requests. Discovery responses have no endpoint and a DiscoveryPayload.
type Response struct {
	Event   ResponseEvent `json:"event"`
	Context *Context      `json:"context,omitempty"`
}

// ResponseEvent is the event object inside a Response
type ResponseEvent struct {
	Header   Header             `json:"header"`
	Endpoint *DirectiveEndpoint `json:"endpoint,omitempty"`
	Payload  any                `json:"payload"`
}

// Context reports property values changed by a directive
type Context struct {
	Properties []Property `json:"properties"`
}

// Property is a single reported property value
type Property struct {
	Namespace                 string `json:"namespace"`
	Instance                  string `json:"instance,omitempty"`
	Name                      string `json:"name"`
	Value                     any    `json:"value"`
	TimeOfSample              string `json:"timeOfSample"`
	UncertaintyInMilliseconds int    `json:"uncertaintyInMilliseconds"`
}

// ErrorPayload is the payload of an ErrorResponse. Error kinds that carry
// extra fields (validRange, currentDeviceMode, ...) use a map payload instead.
type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DiscoveryPayload is the payload of a Discover.Response
type DiscoveryPayload struct {
	Endpoints []DiscoveryEndpoint `json:"endpoints"`
}

// IsError reports whether the response is an ErrorResponse
func (r *Response) IsError() bool {
	return r != nil && r.Event.Header.Name == NameErrorResponse
}
