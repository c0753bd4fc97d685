package devicecloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jarrod-lowe/smarthome-skill-core/internal/registry"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/devicecontract"
)

var (
	// ErrUnsupportedInvocation is returned for targets that are not Lambda functions
	ErrUnsupportedInvocation = errors.New("unsupported invocation type")
	// ErrFunctionError is returned when the device-cloud Lambda raised an unhandled error
	ErrFunctionError = errors.New("device cloud function error")
	// ErrDeviceCloud is returned when the device cloud reports that it could not process the directive
	ErrDeviceCloud = errors.New("device cloud error")
	// ErrEmptyResponse is returned when the device cloud replies without a response
	ErrEmptyResponse = errors.New("device cloud returned no response")
)

// Invoker defines the interface for forwarding directives to the device cloud
type Invoker interface {
	Invoke(ctx context.Context, target registry.Target, request devicecontract.InvocationRequest) (*alexa.Response, error)
}

// LambdaClient defines the interface for Lambda operations
type LambdaClient interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaInvoker forwards directives to device-cloud Lambdas
type LambdaInvoker struct {
	client  LambdaClient
	timeout time.Duration
}

// NewLambdaInvoker creates a new Lambda invoker. A zero timeout leaves the
// caller's deadline in place.
func NewLambdaInvoker(client LambdaClient, timeout time.Duration) *LambdaInvoker {
	return &LambdaInvoker{client: client, timeout: timeout}
}

// Invoke sends the directive to target and returns the device cloud's
// response unchanged
func (i *LambdaInvoker) Invoke(ctx context.Context, target registry.Target, request devicecontract.InvocationRequest) (*alexa.Response, error) {
	ctx, span := otel.Tracer("devicecloud").Start(ctx, "DeviceCloudInvoke")
	defer span.End()

	span.SetAttributes(
		attribute.String("invoke_target", target.InvokeTarget),
		attribute.String("endpoint_id", request.EndpointID),
		attribute.String("request_id", request.RequestID),
	)

	resp, err := i.invoke(ctx, target, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

func (i *LambdaInvoker) invoke(ctx context.Context, target registry.Target, request devicecontract.InvocationRequest) (*alexa.Response, error) {
	if target.InvocationType != registry.InvocationTypeLambda {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedInvocation, target.InvocationType)
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := i.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(target.InvokeTarget),
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("lambda invocation failed: %w", err)
	}

	if output.FunctionError != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrFunctionError, aws.ToString(output.FunctionError), output.Payload)
	}

	var response devicecontract.InvocationResponse
	if err := json.Unmarshal(output.Payload, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrDeviceCloud, response.Error.Type, response.Error.Message)
	}
	if response.Response == nil {
		return nil, ErrEmptyResponse
	}

	return response.Response, nil
}
