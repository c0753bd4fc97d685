// Package controller is the directive dispatch engine. It classifies an
// inbound event as discovery or control, locates the target device and
// returns the response envelope. Every failure becomes the generic
// INTERNAL_ERROR response; Run never returns an error.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jarrod-lowe/smarthome-skill-core/internal/device"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

// NoEndpointID is reported in error responses when no device was resolved
const NoEndpointID = "NO_ENDPOINT_ID"

const genericErrorMessage = "There is a problem when doing device action"

var (
	// ErrNoDiscovery is logged when neither a pool nor a discovery function is configured
	ErrNoDiscovery = errors.New("no discovery mechanism configured")
	// ErrNoSearch is logged when neither a pool nor a search function is configured
	ErrNoSearch = errors.New("no device search mechanism configured")
	// ErrDeviceNotFound is logged when no device matches the directive
	ErrDeviceNotFound = errors.New("device not found")
)

// DiscoveryFunc returns the endpoints to report for a Discover request
type DiscoveryFunc func(ctx context.Context, event alexa.Event) ([]alexa.DiscoveryEndpoint, error)

// SearchFunc returns the device a control directive targets, or nil when
// there is none
type SearchFunc func(ctx context.Context, event alexa.Event) (device.Device, error)

// Logger is the structured logger the engine writes to. *slog.Logger
// satisfies it.
type Logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Config holds configuration for the controller
type Config struct {
	// Devices is the device pool. When non-empty it takes precedence over
	// Discover and Search.
	Devices  []device.Device
	Discover DiscoveryFunc
	Search   SearchFunc
	Logger   Logger
}

// Controller dispatches a single event
type Controller struct {
	devices   []device.Device
	discover  DiscoveryFunc
	search    SearchFunc
	logger    Logger
	discovery Strategy
	control   Strategy
}

// New creates a controller and resolves its discovery and control strategies
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		devices:   cfg.Devices,
		discover:  cfg.Discover,
		search:    cfg.Search,
		logger:    logger,
		discovery: resolveStrategy(len(cfg.Devices), cfg.Discover != nil),
		control:   resolveStrategy(len(cfg.Devices), cfg.Search != nil),
	}
}

// DiscoveryStrategy returns how Discover requests are served
func (c *Controller) DiscoveryStrategy() Strategy {
	return c.discovery
}

// ControlStrategy returns how control directives are served
func (c *Controller) ControlStrategy() Strategy {
	return c.control
}

// Run dispatches event and returns the response to send back. Handler
// responses, including handler-declared ErrorResponses, are returned
// unchanged.
func (c *Controller) Run(ctx context.Context, event alexa.Event) (resp *alexa.Response) {
	header := event.Directive.Header
	var resolved device.Device

	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorContext(ctx, "panic during dispatch",
				slog.String("namespace", header.Namespace),
				slog.String("name", header.Name),
				slog.String("message_id", header.MessageID),
				slog.Any("panic", r))
			resp = genericErrorResponse(event, resolved)
		}
	}()

	if event.IsDiscovery() {
		out, err := c.runDiscovery(ctx, event)
		if err != nil {
			c.logger.ErrorContext(ctx, "discovery failed",
				slog.String("strategy", c.discovery.String()),
				slog.String("message_id", header.MessageID),
				slog.String("error", err.Error()))
			return genericErrorResponse(event, nil)
		}
		c.logger.InfoContext(ctx, "discovery complete",
			slog.String("strategy", c.discovery.String()),
			slog.Int("endpoints", len(out.Event.Payload.(alexa.DiscoveryPayload).Endpoints)))
		return out
	}

	d, err := c.findDevice(ctx, event)
	if err != nil {
		c.logger.ErrorContext(ctx, "device lookup failed",
			slog.String("strategy", c.control.String()),
			slog.String("namespace", header.Namespace),
			slog.String("name", header.Name),
			slog.String("endpoint_id", event.EndpointID()),
			slog.String("error", err.Error()))
		return genericErrorResponse(event, nil)
	}
	resolved = d

	out, err := device.SendSignal(ctx, d)
	if err != nil {
		c.logger.ErrorContext(ctx, "directive failed",
			slog.String("namespace", header.Namespace),
			slog.String("name", header.Name),
			slog.String("endpoint_id", d.EndpointID()),
			slog.String("error", err.Error()))
		return genericErrorResponse(event, d)
	}

	if out.IsError() {
		c.logger.WarnContext(ctx, "device returned error response",
			slog.String("namespace", header.Namespace),
			slog.String("name", header.Name),
			slog.String("endpoint_id", d.EndpointID()))
	} else {
		c.logger.InfoContext(ctx, "directive complete",
			slog.String("namespace", header.Namespace),
			slog.String("name", header.Name),
			slog.String("endpoint_id", d.EndpointID()))
	}
	return out
}

func (c *Controller) runDiscovery(ctx context.Context, event alexa.Event) (*alexa.Response, error) {
	var endpoints []alexa.DiscoveryEndpoint

	switch c.discovery {
	case StrategyPool:
		endpoints = make([]alexa.DiscoveryEndpoint, 0, len(c.devices))
		for _, d := range c.devices {
			endpoint, err := device.BuildEndpoint(d)
			if err != nil {
				return nil, err
			}
			endpoints = append(endpoints, endpoint)
		}
	case StrategyFunction:
		found, err := c.discover(ctx, event)
		if err != nil {
			return nil, fmt.Errorf("discovery function failed: %w", err)
		}
		endpoints = found
	default:
		return nil, ErrNoDiscovery
	}

	if endpoints == nil {
		endpoints = []alexa.DiscoveryEndpoint{}
	}

	// Header is a value copy; the caller's event keeps its original name
	header := event.Directive.Header
	header.Name = alexa.NameDiscoverResponse

	return &alexa.Response{
		Event: alexa.ResponseEvent{
			Header:  header,
			Payload: alexa.DiscoveryPayload{Endpoints: endpoints},
		},
	}, nil
}

func (c *Controller) findDevice(ctx context.Context, event alexa.Event) (device.Device, error) {
	switch c.control {
	case StrategyPool:
		for _, d := range c.devices {
			if matches(d, event) {
				return d, nil
			}
		}
		return nil, ErrDeviceNotFound
	case StrategyFunction:
		d, err := c.search(ctx, event)
		if err != nil {
			return nil, fmt.Errorf("search function failed: %w", err)
		}
		// A typed-nil device is not nil but cannot serve the directive
		if _, ok := endpointIDOf(d); !ok {
			return nil, ErrDeviceNotFound
		}
		return d, nil
	default:
		return nil, ErrNoSearch
	}
}

// genericErrorResponse builds the INTERNAL_ERROR response for event. The
// endpoint id is taken from d when a device was resolved.
func genericErrorResponse(event alexa.Event, d device.Device) *alexa.Response {
	in := event.Directive.Header
	endpointID, ok := endpointIDOf(d)
	if !ok {
		endpointID = NoEndpointID
	}

	return &alexa.Response{
		Event: alexa.ResponseEvent{
			Header: alexa.Header{
				Namespace:        alexa.NamespaceAlexa,
				Name:             alexa.NameErrorResponse,
				MessageID:        in.MessageID + "-R",
				PayloadVersion:   alexa.PayloadVersion,
				CorrelationToken: in.CorrelationToken,
			},
			Endpoint: &alexa.DirectiveEndpoint{EndpointID: endpointID},
			Payload: alexa.ErrorPayload{
				Type:    alexa.ErrorInternal,
				Message: genericErrorMessage,
			},
		},
	}
}

// endpointIDOf returns the id of d. ok is false for a nil device or one
// whose EndpointID panics.
func endpointIDOf(d device.Device) (id string, ok bool) {
	if d == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			id, ok = "", false
		}
	}()
	return d.EndpointID(), true
}

// matches is device.Matches for a pooled device; a device that panics
// while matching is skipped
func matches(d device.Device, event alexa.Event) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return device.Matches(d, event)
}
