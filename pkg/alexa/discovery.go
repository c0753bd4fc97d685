package alexa

// DiscoveryEndpoint describes one device in a Discover.Response
// https://developer.amazon.com/en-US/docs/alexa/device-apis/alexa-discovery.html#endpoint-object
type DiscoveryEndpoint struct {
	EndpointID           string                `json:"endpointId"`
	ManufacturerName     string                `json:"manufacturerName"`
	Description          string                `json:"description"`
	FriendlyName         string                `json:"friendlyName"`
	DisplayCategories    []string              `json:"displayCategories"`
	AdditionalAttributes *AdditionalAttributes `json:"additionalAttributes,omitempty"`
	Capabilities         []Capability          `json:"capabilities"`
	Cookie               map[string]string     `json:"cookie,omitempty"`
}

// AdditionalAttributes holds optional manufacturer details
type AdditionalAttributes struct {
	Manufacturer     string `json:"manufacturer,omitempty"`
	Model            string `json:"model,omitempty"`
	SerialNumber     string `json:"serialNumber,omitempty"`
	FirmwareVersion  string `json:"firmwareVersion,omitempty"`
	SoftwareVersion  string `json:"softwareVersion,omitempty"`
	CustomIdentifier string `json:"customIdentifier,omitempty"`
}

// Capability is one interface an endpoint supports
type Capability struct {
	Type                string                `json:"type"`
	Interface           string                `json:"interface"`
	Instance            string                `json:"instance,omitempty"`
	Version             string                `json:"version"`
	Properties          *CapabilityProperties `json:"properties,omitempty"`
	CapabilityResources *CapabilityResources  `json:"capabilityResources,omitempty"`
	Semantics           *Semantics            `json:"semantics,omitempty"`
	Configuration       any                   `json:"configuration,omitempty"`
}

// CapabilityProperties lists the reportable properties of a capability
type CapabilityProperties struct {
	Supported           []SupportedProperty `json:"supported"`
	ProactivelyReported bool                `json:"proactivelyReported"`
	Retrievable         bool                `json:"retrievable"`
}

// SupportedProperty names a single property
type SupportedProperty struct {
	Name string `json:"name"`
}

// CapabilityResources holds the friendly names of a capability instance
type CapabilityResources struct {
	FriendlyNames []FriendlyName `json:"friendlyNames"`
}

// FriendlyName is either an Alexa asset reference or a localized text
type FriendlyName struct {
	Type  string            `json:"@type"`
	Value FriendlyNameValue `json:"value"`
}

// FriendlyNameValue holds AssetID for "asset" names, Text and Locale for "text" names
type FriendlyNameValue struct {
	AssetID string `json:"assetId,omitempty"`
	Text    string `json:"text,omitempty"`
	Locale  string `json:"locale,omitempty"`
}

// Semantics maps utterances like "open" or "close" onto directives
type Semantics struct {
	ActionMappings []ActionMapping `json:"actionMappings"`
	StateMappings  []StateMapping  `json:"stateMappings,omitempty"`
}

// ActionMapping is one ActionsToDirective mapping
type ActionMapping struct {
	Type      string                  `json:"@type"`
	Actions   []string                `json:"actions,omitempty"`
	Directive *ActionMappingDirective `json:"directive,omitempty"`
}

// ActionMappingDirective is the directive an action maps to
type ActionMappingDirective struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// StateMapping is one StatesToValue or StatesToRange mapping
type StateMapping struct {
	Type   string    `json:"@type"`
	States []string  `json:"states,omitempty"`
	Value  any       `json:"value,omitempty"`
	Range  *RangeMap `json:"range,omitempty"`
}

// RangeMap bounds a StatesToRange mapping
type RangeMap struct {
	MinimumValue float64 `json:"minimumValue"`
	MaximumValue float64 `json:"maximumValue"`
}

// ThermostatConfiguration is the configuration of a ThermostatController
type ThermostatConfiguration struct {
	SupportedModes     []string `json:"supportedModes"`
	SupportsScheduling bool     `json:"supportsScheduling"`
}

// ModeConfiguration is the configuration of a ModeController
type ModeConfiguration struct {
	Ordered        bool            `json:"ordered"`
	SupportedModes []SupportedMode `json:"supportedModes"`
}

// SupportedMode is one mode value with its friendly names
type SupportedMode struct {
	Value         string              `json:"value"`
	ModeResources CapabilityResources `json:"modeResources"`
}

// RangeConfiguration is the configuration of a RangeController
type RangeConfiguration struct {
	SupportedRange SupportedRange `json:"supportedRange"`
	Presets        []RangePreset  `json:"presets,omitempty"`
	UnitOfMeasure  string         `json:"unitOfMeasure,omitempty"`
}

// SupportedRange bounds a RangeController
type SupportedRange struct {
	MinimumValue float64 `json:"minimumValue"`
	MaximumValue float64 `json:"maximumValue"`
	Precision    float64 `json:"precision"`
}

// RangePreset names a specific range value
type RangePreset struct {
	RangeValue      float64             `json:"rangeValue"`
	PresetResources CapabilityResources `json:"presetResources"`
}

// AssetName builds an "asset" friendly name
func AssetName(assetID string) FriendlyName {
	return FriendlyName{Type: "asset", Value: FriendlyNameValue{AssetID: assetID}}
}

// TextName builds a localized "text" friendly name
func TextName(text, locale string) FriendlyName {
	return FriendlyName{Type: "text", Value: FriendlyNameValue{Text: text, Locale: locale}}
}
