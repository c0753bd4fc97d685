// Package device defines the contract between the dispatch engine and the
// devices a skill exposes: identity, optional custom matching, optional
// discovery description, and the behavior table that maps directives onto
// device-cloud actions.
package device

import (
	"context"
	"errors"

	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

var (
	// ErrEmptyBehavior is returned when a device declares no behaviors at all
	ErrEmptyBehavior = errors.New("device has no behaviors")
	// ErrNoBehavior is returned when no handler exists for the directive
	ErrNoBehavior = errors.New("no behavior for directive")
	// ErrNilResponse is returned when a handler returns neither a response nor an error
	ErrNilResponse = errors.New("behavior returned no response")
	// ErrNotDiscoverable is returned when discovery is attempted on a device
	// missing one of the descriptive methods
	ErrNotDiscoverable = errors.New("device is not discoverable")
)

// Handler executes one directive against the device cloud
type Handler func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error)

// BehaviorTable maps namespace -> directive name -> handler
type BehaviorTable map[string]map[string]Handler

// Device is the capability set every device must provide. A device is bound
// to a single inbound event (see Base) and is discarded after responding.
type Device interface {
	EndpointID() string
	Event() alexa.Event
	Behavior() BehaviorTable
}

// Matcher is implemented by devices that can claim a directive whose
// endpoint id is not their own
type Matcher interface {
	Match(event alexa.Event) bool
}

// Descriptor holds the descriptive metadata of a device. Name and
// Description are informational only: discovery never reads them, and the
// discovery description carries ManufactureName.
type Descriptor struct {
	EndpointID           string
	Name                 string
	Description          string
	ManufactureName      string
	FriendlyName         string
	Cookie               map[string]string
	AdditionalAttributes *alexa.AdditionalAttributes
}

// DescriptorProvider supplies descriptive metadata for discovery
type DescriptorProvider interface {
	Descriptor() Descriptor
}

// CategoryProvider supplies display categories for discovery
type CategoryProvider interface {
	Categories() []string
}

// CapabilityProvider supplies capabilities for discovery, in display order
type CapabilityProvider interface {
	Capabilities() []alexa.Capability
}

// Discoverable is a device that can describe itself during discovery
type Discoverable interface {
	Device
	DescriptorProvider
	CategoryProvider
	CapabilityProvider
}

// Matches reports whether d is the target of event. The endpoint id is
// checked first; otherwise the device's Matcher decides, and a device
// without one matches everything.
func Matches(d Device, event alexa.Event) bool {
	if d.EndpointID() == event.EndpointID() {
		return true
	}
	if m, ok := d.(Matcher); ok {
		return m.Match(event)
	}
	return true
}
