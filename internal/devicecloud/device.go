// Package devicecloud adapts registered endpoints into devices whose
// behaviors forward each directive to a device-cloud Lambda.
package devicecloud

import (
	"context"
	"maps"

	"github.com/google/uuid"

	"github.com/jarrod-lowe/smarthome-skill-core/internal/device"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/registry"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/devicecontract"
)

// Device is a registered endpoint bound to one inbound event
type Device struct {
	device.Base
	record  registry.EndpointRecord
	userID  string
	invoker Invoker
}

// NewDevice binds record to event
func NewDevice(event alexa.Event, record registry.EndpointRecord, userID string, invoker Invoker, opts ...device.Option) *Device {
	return &Device{
		Base:    device.NewBase(event, opts...),
		record:  record,
		userID:  userID,
		invoker: invoker,
	}
}

func (d *Device) EndpointID() string {
	return d.record.EndpointID
}

func (d *Device) Descriptor() device.Descriptor {
	return device.Descriptor{
		EndpointID:      d.record.EndpointID,
		Name:            d.record.Name,
		Description:     d.record.Description,
		ManufactureName: d.record.ManufacturerName,
		FriendlyName:    d.record.FriendlyName,
		Cookie:          maps.Clone(d.record.Cookie),
	}
}

func (d *Device) Categories() []string {
	return d.record.DisplayCategories
}

func (d *Device) Capabilities() []alexa.Capability {
	return d.record.Capabilities
}

// Match claims directives addressed to another endpoint id only when the
// record carries a match rule and the rule holds for event
func (d *Device) Match(event alexa.Event) bool {
	if d.record.Match == nil {
		return false
	}
	return device.MatchPointer(event, d.record.Match.Pointer, d.record.Match.Value)
}

// Behavior builds a handler per registered target. Each handler forwards
// the directive to the device cloud.
func (d *Device) Behavior() device.BehaviorTable {
	table := make(device.BehaviorTable, len(d.record.Behaviors))
	for namespace, byName := range d.record.Behaviors {
		handlers := make(map[string]device.Handler, len(byName))
		for name, target := range byName {
			handlers[name] = d.forward(target)
		}
		table[namespace] = handlers
	}
	return table
}

func (d *Device) forward(target registry.Target) device.Handler {
	return func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
		resp, err := d.invoker.Invoke(ctx, target, devicecontract.InvocationRequest{
			RequestID:  uuid.NewString(),
			UserID:     d.userID,
			EndpointID: d.record.EndpointID,
			Directive:  directive,
		})
		if err != nil {
			return nil, err
		}
		// Device clouds may omit the endpoint; echo the inbound one
		if resp != nil && resp.Event.Endpoint == nil {
			resp.Event.Endpoint = d.ResponseEndpoint()
		}
		return resp, nil
	}
}
