package alexa

import "time"

// CapabilityTypeAlexaInterface is the type of every v3 controller capability
const CapabilityTypeAlexaInterface = "AlexaInterface"

// CapabilityParam describes a capability to build with NewCapability
type CapabilityParam struct {
	Interface           string
	Instance            string
	SupportedProperties []string
	ProactivelyReported bool
	Retrievable         bool
	CapabilityResources *CapabilityResources
	Semantics           *Semantics
	Configuration       any
}

// NewCapability builds a v3 AlexaInterface capability. Properties are only
// emitted when SupportedProperties is non-empty.
func NewCapability(param CapabilityParam) Capability {
	capability := Capability{
		Type:                CapabilityTypeAlexaInterface,
		Interface:           param.Interface,
		Instance:            param.Instance,
		Version:             PayloadVersion,
		CapabilityResources: param.CapabilityResources,
		Semantics:           param.Semantics,
		Configuration:       param.Configuration,
	}

	if len(param.SupportedProperties) > 0 {
		supported := make([]SupportedProperty, 0, len(param.SupportedProperties))
		for _, name := range param.SupportedProperties {
			supported = append(supported, SupportedProperty{Name: name})
		}
		capability.Properties = &CapabilityProperties{
			Supported:           supported,
			ProactivelyReported: param.ProactivelyReported,
			Retrievable:         param.Retrievable,
		}
	}

	return capability
}

// Presets return a fresh value on every call so that endpoints never share
// nested capability data.

// PowerControllerPreset is a PowerController reporting powerState
func PowerControllerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespacePowerController,
		SupportedProperties: []string{"powerState"},
	})
}

// PowerLevelControllerPreset is a PowerLevelController reporting powerLevel
func PowerLevelControllerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespacePowerLevelController,
		SupportedProperties: []string{"powerLevel"},
	})
}

// BrightnessControllerPreset is a BrightnessController reporting brightness
func BrightnessControllerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespaceBrightnessController,
		SupportedProperties: []string{"brightness"},
	})
}

// ChannelControllerPreset is a ChannelController reporting channel
func ChannelControllerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespaceChannelController,
		SupportedProperties: []string{"channel"},
	})
}

// StepSpeakerPreset is a StepSpeaker, which has no properties
func StepSpeakerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface: NamespaceStepSpeaker,
	})
}

// SpeakerPreset is a Speaker reporting volume and muted
func SpeakerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespaceSpeaker,
		SupportedProperties: []string{"volume", "muted"},
	})
}

// FanOnLightToggleControllerPreset is the fan switch of a ceiling light with a fan
func FanOnLightToggleControllerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespaceToggleController,
		Instance:            "LightFan.switch",
		SupportedProperties: []string{"toggleState"},
		CapabilityResources: &CapabilityResources{
			FriendlyNames: []FriendlyName{TextName("ファン", "ja-JP")},
		},
		Semantics: openCloseSemantics(
			[]string{"Alexa.Actions.Close", "Alexa.Actions.Open"},
			[]string{"Alexa.States.Closed", "Alexa.States.Open"},
		),
	})
}

// CurtainToggleControllerPreset lets a curtain accept open/close utterances (ja-JP)
func CurtainToggleControllerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespaceToggleController,
		Instance:            "Curtain",
		SupportedProperties: []string{"toggleState"},
		CapabilityResources: &CapabilityResources{
			FriendlyNames: []FriendlyName{
				TextName("カーテン", "ja-JP"),
				TextName("電動カーテン", "ja-JP"),
			},
		},
		Semantics: openCloseSemantics(
			[]string{"Alexa.Actions.Open", "Alexa.Actions.Close"},
			[]string{"Alexa.States.Open", "Alexa.States.Closed"},
		),
	})
}

// ThermostatControllerPreset is a single-setpoint thermostat without scheduling
func ThermostatControllerPreset() Capability {
	return NewCapability(CapabilityParam{
		Interface:           NamespaceThermostatController,
		SupportedProperties: []string{"targetSetpoint", "lowerSetpoint", "upperSetpoint", "thermostatMode"},
		ProactivelyReported: true,
		Retrievable:         true,
		Configuration: ThermostatConfiguration{
			SupportedModes:     []string{ThermostatModeAuto, ThermostatModeCool, ThermostatModeEco, ThermostatModeHeat, ThermostatModeOff},
			SupportsScheduling: false,
		},
	})
}

// ThermostatModeControllerPreset is an air conditioner mode selector (ja-JP)
func ThermostatModeControllerPreset() Capability {
	mode := func(value string, names ...string) SupportedMode {
		friendly := make([]FriendlyName, 0, len(names))
		for _, n := range names {
			friendly = append(friendly, TextName(n, "ja-JP"))
		}
		return SupportedMode{Value: value, ModeResources: CapabilityResources{FriendlyNames: friendly}}
	}

	return NewCapability(CapabilityParam{
		Interface:           NamespaceModeController,
		Instance:            "Thermostat.mode",
		SupportedProperties: []string{"mode"},
		CapabilityResources: &CapabilityResources{
			FriendlyNames: []FriendlyName{
				AssetName("Alexa.Setting.Mode"),
				TextName("モード", "ja-JP"),
			},
		},
		Configuration: ModeConfiguration{
			Ordered: false,
			SupportedModes: []SupportedMode{
				mode("mode.Cool", "冷房"),
				mode("mode.Heat", "暖房"),
				mode("mode.Humidity", "加湿"),
				mode("mode.Fan", "送風"),
				mode("mode.Dehumidify", "除湿", "ドライ"),
			},
		},
	})
}

// FanRangeControllerPreset is a fan speed range from minimum to maximum
func FanRangeControllerPreset() Capability {
	preset := func(value float64, names ...FriendlyName) RangePreset {
		return RangePreset{RangeValue: value, PresetResources: CapabilityResources{FriendlyNames: names}}
	}

	return NewCapability(CapabilityParam{
		Interface:           NamespaceRangeController,
		Instance:            "Fan.speed",
		SupportedProperties: []string{"rangeValue"},
		CapabilityResources: &CapabilityResources{
			FriendlyNames: []FriendlyName{AssetName("Alexa.DeviceName.Fan")},
		},
		Configuration: RangeConfiguration{
			SupportedRange: SupportedRange{MinimumValue: 0, MaximumValue: 5, Precision: 1},
			Presets: []RangePreset{
				preset(0, AssetName("Alexa.Value.Minimum"), TextName("最弱", "ja-JP")),
				preset(1, AssetName("Alexa.Value.Low")),
				preset(2, AssetName("Alexa.Value.Medium")),
				preset(3, AssetName("Alexa.Value.High")),
				preset(4, AssetName("Alexa.Value.Maximum"), TextName("最強", "ja-JP")),
			},
		},
	})
}

// openCloseSemantics maps the two actions to TurnOff/TurnOn (or TurnOn/TurnOff)
// and the two states to the matching toggle values, in the order given.
func openCloseSemantics(actions, states []string) *Semantics {
	s := &Semantics{}
	for _, action := range actions {
		name := NameTurnOn
		if action == "Alexa.Actions.Close" {
			name = NameTurnOff
		}
		s.ActionMappings = append(s.ActionMappings, ActionMapping{
			Type:      "ActionsToDirective",
			Actions:   []string{action},
			Directive: &ActionMappingDirective{Name: name, Payload: map[string]any{}},
		})
	}
	for _, state := range states {
		value := "ON"
		if state == "Alexa.States.Closed" {
			value = "OFF"
		}
		s.StateMappings = append(s.StateMappings, StateMapping{
			Type:   "StatesToValue",
			States: []string{state},
			Value:  value,
		})
	}
	return s
}

// ThermostatModeContext builds the context reported after a thermostat mode change
func ThermostatModeContext(mode string, targetSetpoint, temperature float64, scale string, now time.Time) *Context {
	timeOfSample := now.UTC().Format(time.RFC3339)
	return &Context{
		Properties: []Property{
			{
				Namespace:                 NamespaceThermostatController,
				Name:                      "thermostatMode",
				Value:                     mode,
				TimeOfSample:              timeOfSample,
				UncertaintyInMilliseconds: 500,
			},
			{
				Namespace:                 NamespaceThermostatController,
				Name:                      "targetSetpoint",
				Value:                     map[string]any{"value": targetSetpoint, "scale": scale},
				TimeOfSample:              timeOfSample,
				UncertaintyInMilliseconds: 500,
			},
			{
				Namespace:                 NamespaceTemperatureSensor,
				Name:                      "temperature",
				Value:                     map[string]any{"value": temperature, "scale": scale},
				TimeOfSample:              timeOfSample,
				UncertaintyInMilliseconds: 500,
			},
		},
	}
}
