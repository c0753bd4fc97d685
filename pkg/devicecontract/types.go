// Package devicecontract defines the contract types exchanged between the
// skill and the device-cloud Lambdas that execute directives. Device-cloud
// Lambdas import it to decode requests and to shape their replies.
package devicecontract

import "github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"

// InvocationRequest is the payload sent from the skill to a device-cloud Lambda
type InvocationRequest struct {
	RequestID  string          `json:"requestId"`
	UserID     string          `json:"userId"`
	EndpointID string          `json:"endpointId"`
	Directive  alexa.Directive `json:"directive"`
}

// InvocationResponse is the reply from a device-cloud Lambda. Exactly one of
// Response or Error is set.
type InvocationResponse struct {
	Response *alexa.Response `json:"response,omitempty"`
	Error    *ErrorDetail    `json:"error,omitempty"`
}

// ErrorDetail reports that the device cloud could not process the directive.
// It is distinct from an ErrorResponse, which the device cloud returns as a
// normal Response.
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
