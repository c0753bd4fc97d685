// Command example-light is a self-contained skill serving a single ceiling
// light with a fan from an in-process device pool.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jarrod-lowe/smarthome-skill-core/internal/controller"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/device"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

var (
	// Structured JSON logger
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	now = time.Now
)

const lightEndpointID = "ceiling-light-1"

// ceilingLight is a dimmable ceiling light with a fan switch
type ceilingLight struct {
	device.Base
}

func newCeilingLight(event alexa.Event) *ceilingLight {
	return &ceilingLight{Base: device.NewBase(event)}
}

func (l *ceilingLight) EndpointID() string { return lightEndpointID }

func (l *ceilingLight) Descriptor() device.Descriptor {
	return device.Descriptor{
		EndpointID:      lightEndpointID,
		Name:            "ceiling-light",
		Description:     "Ceiling light with fan",
		ManufactureName: "example",
		FriendlyName:    "Living room light",
		Cookie:          map[string]string{"room": "living"},
	}
}

func (l *ceilingLight) Categories() []string { return []string{alexa.CategoryLight} }

func (l *ceilingLight) Capabilities() []alexa.Capability {
	return []alexa.Capability{
		alexa.BrightnessControllerPreset(),
		alexa.PowerControllerPreset(),
		alexa.FanOnLightToggleControllerPreset(),
	}
}

// Match keeps directives for other endpoints away from the light
func (l *ceilingLight) Match(event alexa.Event) bool {
	return false
}

func (l *ceilingLight) Behavior() device.BehaviorTable {
	return device.BehaviorTable{
		alexa.NamespaceBrightnessController: {
			// The light has no absolute dimmer, only steps
			alexa.NameSetBrightness: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
				return l.ErrorResponse(alexa.ErrorNotInOperation, "This operation is not supported."), nil
			},
			alexa.NameAdjustBrightness: l.adjustBrightness,
		},
		alexa.NamespacePowerController: {
			alexa.NameTurnOn: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
				return l.report(alexa.NamespacePowerController, "", "powerState", "ON"), nil
			},
			alexa.NameTurnOff: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
				return l.report(alexa.NamespacePowerController, "", "powerState", "OFF"), nil
			},
		},
		alexa.NamespaceToggleController: {
			alexa.NameTurnOn: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
				return l.report(alexa.NamespaceToggleController, "LightFan.switch", "toggleState", "ON"), nil
			},
			alexa.NameTurnOff: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
				return l.report(alexa.NamespaceToggleController, "LightFan.switch", "toggleState", "OFF"), nil
			},
		},
	}
}

func (l *ceilingLight) adjustBrightness(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
	delta, ok := directive.Payload["brightnessDelta"].(float64)
	if !ok {
		return l.ErrorResponse(alexa.ErrorInvalidValue, "brightnessDelta must be a number"), nil
	}
	if delta < -100 || delta > 100 {
		return l.ErrorResponseWith(alexa.ErrorValueOutOfRange, "brightnessDelta out of range", map[string]any{
			"validRange": map[string]any{"minimumValue": -100, "maximumValue": 100},
		}), nil
	}
	return l.report(alexa.NamespaceBrightnessController, "", "brightness", delta), nil
}

// report builds a Response whose context carries a single property
func (l *ceilingLight) report(namespace, instance, name string, value any) *alexa.Response {
	resp := l.Response()
	resp.Context = &alexa.Context{Properties: []alexa.Property{{
		Namespace:    namespace,
		Instance:     instance,
		Name:         name,
		Value:        value,
		TimeOfSample: now().UTC().Format(time.RFC3339),
	}}}
	return resp
}

func handler(ctx context.Context, event alexa.Event) (*alexa.Response, error) {
	tracer := otel.Tracer("smarthome-example-light")
	ctx, span := tracer.Start(ctx, "ExampleLightHandler")
	defer span.End()

	span.SetAttributes(
		attribute.String("function", "example-light"),
		attribute.String("namespace", event.Directive.Header.Namespace),
		attribute.String("name", event.Directive.Header.Name),
	)

	ctrl := controller.New(controller.Config{
		Devices: []device.Device{newCeilingLight(event)},
		Logger:  logger,
	})
	return ctrl.Run(ctx, event), nil
}

func main() {
	// Initialize TracerProvider using xrayconfig for ADOT Lambda Layer
	tp, err := xrayconfig.NewTracerProvider(context.Background())
	if err != nil {
		logger.Error("FATAL: Failed to initialize tracer provider",
			slog.String("error", err.Error()),
		)
		panic(err)
	}
	otel.SetTracerProvider(tp)

	lambda.Start(otellambda.InstrumentHandler(handler, xrayconfig.WithRecommendedOptions(tp)...))
}
