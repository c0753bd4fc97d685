package registry

import "github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"

// InvocationTypeLambda invokes the target synchronously as a Lambda function
const InvocationTypeLambda = "lambda-invoke"

// EndpointRecord represents an endpoint registration. In DynamoDB it is
// stored under pk=USER#<userId>, sk=ENDPOINT#<endpointId> with the
// capabilities serialised as a JSON string; the S3 catalog carries them
// inline.
type EndpointRecord struct {
	PK                string                       `dynamodbav:"pk" json:"-"`
	SK                string                       `dynamodbav:"sk" json:"-"`
	EndpointID        string                       `dynamodbav:"endpointId" json:"endpointId"`
	Name              string                       `dynamodbav:"name" json:"name"`
	Description       string                       `dynamodbav:"description" json:"description"`
	ManufacturerName  string                       `dynamodbav:"manufacturerName" json:"manufacturerName"`
	FriendlyName      string                       `dynamodbav:"friendlyName" json:"friendlyName"`
	DisplayCategories []string                     `dynamodbav:"displayCategories" json:"displayCategories"`
	Cookie            map[string]string            `dynamodbav:"cookie,omitempty" json:"cookie,omitempty"`
	CapabilitiesJSON  string                       `dynamodbav:"capabilities" json:"-"`
	Capabilities      []alexa.Capability           `dynamodbav:"-" json:"capabilities"`
	Behaviors         map[string]map[string]Target `dynamodbav:"behaviors" json:"behaviors"`
	Match             *MatchRule                   `dynamodbav:"match,omitempty" json:"match,omitempty"`
	RegisteredAt      string                       `dynamodbav:"registeredAt,omitempty" json:"registeredAt,omitempty"`
}

// Target defines how to invoke the device cloud for a directive
type Target struct {
	InvocationType string `dynamodbav:"invocationType" json:"invocationType"`
	InvokeTarget   string `dynamodbav:"invokeTarget" json:"invokeTarget"`
}

// MatchRule lets an endpoint claim directives addressed to another endpoint
// id. The directive matches when the value at Pointer (RFC 6901, evaluated
// against the inbound event) equals Value.
type MatchRule struct {
	Pointer string `dynamodbav:"pointer" json:"pointer"`
	Value   string `dynamodbav:"value" json:"value"`
}

// catalog is the layout of the static S3 endpoint catalog
type catalog struct {
	Endpoints []EndpointRecord `json:"endpoints"`
}
