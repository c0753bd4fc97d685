// Package alexa defines the Smart Home API v3 wire types exchanged between the
// voice platform and the skill: inbound directives, control responses and
// discovery responses.
package alexa

// Event is the envelope the voice platform sends to the skill Lambda
type Event struct {
	Directive Directive `json:"directive"`
}

// Directive is the inbound instruction. Endpoint is absent on discovery requests.
type Directive struct {
	Header   Header             `json:"header"`
	Endpoint *DirectiveEndpoint `json:"endpoint,omitempty"`
	Payload  map[string]any     `json:"payload"`
}

// Header is shared by requests and responses
type Header struct {
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	PayloadVersion   string `json:"payloadVersion"`
	MessageID        string `json:"messageId"`
	CorrelationToken string `json:"correlationToken,omitempty"`
}

// DirectiveEndpoint identifies the target device of a control directive.
// The same shape is echoed back in responses.
type DirectiveEndpoint struct {
	Scope      *Scope            `json:"scope,omitempty"`
	EndpointID string            `json:"endpointId"`
	Cookie     map[string]string `json:"cookie,omitempty"`
}

// Scope carries the account-linking credential
type Scope struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// IsDiscovery reports whether the event is a Discover request. This is the
// only routing decision made on the header.
func (e Event) IsDiscovery() bool {
	h := e.Directive.Header
	return h.Namespace == NamespaceDiscovery && h.Name == NameDiscover
}

// EndpointID returns the directive's target endpoint id, or "" for
// directives without an endpoint.
func (e Event) EndpointID() string {
	if e.Directive.Endpoint == nil {
		return ""
	}
	return e.Directive.Endpoint.EndpointID
}

// BearerToken returns the account-linking token. Control directives carry it
// in endpoint.scope, discovery requests in payload.scope.
func (e Event) BearerToken() string {
	if ep := e.Directive.Endpoint; ep != nil && ep.Scope != nil && ep.Scope.Token != "" {
		return ep.Scope.Token
	}
	scope, ok := e.Directive.Payload["scope"].(map[string]any)
	if !ok {
		return ""
	}
	token, _ := scope["token"].(string)
	return token
}
