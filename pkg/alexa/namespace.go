package alexa

// PayloadVersion is the Smart Home API version stamped on every response
const PayloadVersion = "3"

// Namespaces
const (
	NamespaceAlexa     = "Alexa"
	NamespaceDiscovery = "Alexa.Discovery"

	NamespaceBrightnessController       = "Alexa.BrightnessController"
	NamespaceChannelController          = "Alexa.ChannelController"
	NamespaceColorController            = "Alexa.ColorController"
	NamespaceColorTemperatureController = "Alexa.ColorTemperatureController"
	NamespaceLockController             = "Alexa.LockController"
	NamespaceModeController             = "Alexa.ModeController"
	NamespacePercentageController       = "Alexa.PercentageController"
	NamespacePowerController            = "Alexa.PowerController"
	NamespacePowerLevelController       = "Alexa.PowerLevelController"
	NamespaceRangeController            = "Alexa.RangeController"
	NamespaceSceneController            = "Alexa.SceneController"
	NamespaceSpeaker                    = "Alexa.Speaker"
	NamespaceStepSpeaker                = "Alexa.StepSpeaker"
	NamespaceTemperatureSensor          = "Alexa.TemperatureSensor"
	NamespaceThermostatController       = "Alexa.ThermostatController"
	NamespaceToggleController           = "Alexa.ToggleController"
)

// Header names
const (
	NameDiscover         = "Discover"
	NameDiscoverResponse = "Discover.Response"
	NameResponse         = "Response"
	NameErrorResponse    = "ErrorResponse"
	NameReportState      = "ReportState"
	NameStateReport      = "StateReport"

	NameTurnOn                  = "TurnOn"
	NameTurnOff                 = "TurnOff"
	NameSetBrightness           = "SetBrightness"
	NameAdjustBrightness        = "AdjustBrightness"
	NameSetMode                 = "SetMode"
	NameAdjustMode              = "AdjustMode"
	NameSetRangeValue           = "SetRangeValue"
	NameAdjustRangeValue        = "AdjustRangeValue"
	NameSetTargetTemperature    = "SetTargetTemperature"
	NameAdjustTargetTemperature = "AdjustTargetTemperature"
	NameSetThermostatMode       = "SetThermostatMode"
	NameResumeSchedule          = "ResumeSchedule"
	NameChangeChannel           = "ChangeChannel"
	NameSkipChannels            = "SkipChannels"
	NameSetVolume               = "SetVolume"
	NameAdjustVolume            = "AdjustVolume"
	NameSetMute                 = "SetMute"
)

// ErrorResponse types
const (
	ErrorAlreadyInOperation             = "ALREADY_IN_OPERATION"
	ErrorBridgeUnreachable              = "BRIDGE_UNREACHABLE"
	ErrorCloudControlDisabled           = "CLOUD_CONTROL_DISABLED"
	ErrorEndpointBusy                   = "ENDPOINT_BUSY"
	ErrorEndpointLowPower               = "ENDPOINT_LOW_POWER"
	ErrorEndpointUnreachable            = "ENDPOINT_UNREACHABLE"
	ErrorExpiredAuthorizationCredential = "EXPIRED_AUTHORIZATION_CREDENTIAL"
	ErrorFirmwareOutOfDate              = "FIRMWARE_OUT_OF_DATE"
	ErrorHardwareMalfunction            = "HARDWARE_MALFUNCTION"
	ErrorInsufficientPermissions        = "INSUFFICIENT_PERMISSIONS"
	ErrorInternal                       = "INTERNAL_ERROR"
	ErrorInvalidAuthorizationCredential = "INVALID_AUTHORIZATION_CREDENTIAL"
	ErrorInvalidDirective               = "INVALID_DIRECTIVE"
	ErrorInvalidValue                   = "INVALID_VALUE"
	ErrorNoSuchEndpoint                 = "NO_SUCH_ENDPOINT"
	ErrorNotCalibrated                  = "NOT_CALIBRATED"
	ErrorNotSupportedInCurrentMode      = "NOT_SUPPORTED_IN_CURRENT_MODE"
	ErrorNotInOperation                 = "NOT_IN_OPERATION"
	ErrorPowerLevelNotSupported         = "POWER_LEVEL_NOT_SUPPORTED"
	ErrorRateLimitExceeded              = "RATE_LIMIT_EXCEEDED"
	ErrorTemperatureValueOutOfRange     = "TEMPERATURE_VALUE_OUT_OF_RANGE"
	ErrorTooManyFailedAttempts          = "TOO_MANY_FAILED_ATTEMPTS"
	ErrorValueOutOfRange                = "VALUE_OUT_OF_RANGE"

	// ThermostatController specific
	ErrorRequestedSetpointsTooClose = "REQUESTED_SETPOINTS_TOO_CLOSE"
	ErrorThermostatIsOff            = "THERMOSTAT_IS_OFF"
	ErrorUnsupportedThermostatMode  = "UNSUPPORTED_THERMOSTAT_MODE"
	ErrorDualSetpointsUnsupported   = "DUAL_SETPOINTS_UNSUPPORTED"
	ErrorTripleSetpointsUnsupported = "TRIPLE_SETPOINTS_UNSUPPORTED"
	ErrorUnwillingToSetSchedule     = "UNWILLING_TO_SET_SCHEDULE"
	ErrorUnwillingToSetValue        = "UNWILLING_TO_SET_VALUE"
)

// Display categories
const (
	CategoryLight          = "LIGHT"
	CategorySwitch         = "SWITCH"
	CategorySmartPlug      = "SMARTPLUG"
	CategoryFan            = "FAN"
	CategoryTV             = "TV"
	CategorySpeaker        = "SPEAKER"
	CategoryThermostat     = "THERMOSTAT"
	CategoryAirConditioner = "AIR_CONDITIONER"
	CategoryInteriorBlind  = "INTERIOR_BLIND"
	CategoryOther          = "OTHER"
)

// Temperature scales
const (
	ScaleCelsius    = "CELSIUS"
	ScaleFahrenheit = "FAHRENHEIT"
	ScaleKelvin     = "KELVIN"
)

// Thermostat modes
const (
	ThermostatModeOff    = "OFF"
	ThermostatModeCool   = "COOL"
	ThermostatModeHeat   = "HEAT"
	ThermostatModeAuto   = "AUTO"
	ThermostatModeEco    = "ECO"
	ThermostatModeCustom = "CUSTOM"
)
