package devicecloud

import (
	"github.com/jarrod-lowe/smarthome-skill-core/internal/device"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/registry"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

// Catalog builds devices for the endpoints a user has registered
type Catalog struct {
	registry *registry.Registry
	userID   string
	invoker  Invoker
	opts     []device.Option
}

// NewCatalog creates a catalog over reg. opts are applied to every device it builds.
func NewCatalog(reg *registry.Registry, userID string, invoker Invoker, opts ...device.Option) *Catalog {
	return &Catalog{
		registry: reg,
		userID:   userID,
		invoker:  invoker,
		opts:     opts,
	}
}

// Devices returns a device per registered endpoint, bound to event, in
// registry order
func (c *Catalog) Devices(event alexa.Event) []*Device {
	records := c.registry.Records()
	devices := make([]*Device, 0, len(records))
	for _, record := range records {
		devices = append(devices, NewDevice(event, record, c.userID, c.invoker, c.opts...))
	}
	return devices
}

// Endpoints describes every registered endpoint for a Discover response
func (c *Catalog) Endpoints(event alexa.Event) ([]alexa.DiscoveryEndpoint, error) {
	devices := c.Devices(event)
	endpoints := make([]alexa.DiscoveryEndpoint, 0, len(devices))
	for _, d := range devices {
		endpoint, err := device.BuildEndpoint(d)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, nil
}

// Find returns the device event targets, or nil. The endpoint id is
// looked up first; otherwise the first record whose match rule holds wins.
func (c *Catalog) Find(event alexa.Event) *Device {
	if record := c.registry.Lookup(event.EndpointID()); record != nil {
		return NewDevice(event, *record, c.userID, c.invoker, c.opts...)
	}
	for _, d := range c.Devices(event) {
		if d.Match(event) {
			return d
		}
	}
	return nil
}
