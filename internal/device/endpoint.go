package device

import (
	"fmt"
	"maps"

	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

// BuildEndpoint maps a device's descriptor, categories and capabilities onto
// a discovery endpoint. Capability order is preserved. The description field
// carries the manufacturer name.
func BuildEndpoint(d Device) (alexa.DiscoveryEndpoint, error) {
	descriptorProvider, ok := d.(DescriptorProvider)
	if !ok {
		return alexa.DiscoveryEndpoint{}, fmt.Errorf("%w: %s lacks Descriptor", ErrNotDiscoverable, d.EndpointID())
	}
	categoryProvider, ok := d.(CategoryProvider)
	if !ok {
		return alexa.DiscoveryEndpoint{}, fmt.Errorf("%w: %s lacks Categories", ErrNotDiscoverable, d.EndpointID())
	}
	capabilityProvider, ok := d.(CapabilityProvider)
	if !ok {
		return alexa.DiscoveryEndpoint{}, fmt.Errorf("%w: %s lacks Capabilities", ErrNotDiscoverable, d.EndpointID())
	}

	descriptor := descriptorProvider.Descriptor()
	endpointID := descriptor.EndpointID
	if endpointID == "" {
		endpointID = d.EndpointID()
	}

	return alexa.DiscoveryEndpoint{
		EndpointID:           endpointID,
		ManufacturerName:     descriptor.ManufactureName,
		Description:          descriptor.ManufactureName,
		FriendlyName:         descriptor.FriendlyName,
		DisplayCategories:    categoryProvider.Categories(),
		AdditionalAttributes: descriptor.AdditionalAttributes,
		Capabilities:         capabilityProvider.Capabilities(),
		Cookie:               maps.Clone(descriptor.Cookie),
	}, nil
}
