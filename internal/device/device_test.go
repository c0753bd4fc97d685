package device

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

// testDevice is a minimal device with a configurable behavior table
type testDevice struct {
	Base
	id        string
	behaviors func() BehaviorTable
}

func (d *testDevice) EndpointID() string { return d.id }

func (d *testDevice) Behavior() BehaviorTable {
	if d.behaviors == nil {
		return nil
	}
	return d.behaviors()
}

// discoverableDevice adds the descriptive methods to testDevice
type discoverableDevice struct {
	testDevice
	descriptor   Descriptor
	categories   []string
	capabilities []alexa.Capability
}

func (d *discoverableDevice) Descriptor() Descriptor { return d.descriptor }
func (d *discoverableDevice) Categories() []string { return d.categories }
func (d *discoverableDevice) Capabilities() []alexa.Capability { return d.capabilities }

// partialDevice has a descriptor and categories but no capabilities
type partialDevice struct {
	testDevice
}

func (d *partialDevice) Descriptor() Descriptor { return Descriptor{EndpointID: d.id} }
func (d *partialDevice) Categories() []string { return []string{alexa.CategoryLight} }

// matcherDevice claims events via a custom predicate
type matcherDevice struct {
	testDevice
	match func(alexa.Event) bool
}

func (d *matcherDevice) Match(event alexa.Event) bool { return d.match(event) }

func controlEvent(namespace, name, endpointID string) alexa.Event {
	return alexa.Event{
		Directive: alexa.Directive{
			Header: alexa.Header{
				Namespace:        namespace,
				Name:             name,
				PayloadVersion:   "3",
				MessageID:        "id1",
				CorrelationToken: "cotoken",
			},
			Endpoint: &alexa.DirectiveEndpoint{
				Scope:      &alexa.Scope{Type: "BearerToken", Token: "token"},
				EndpointID: endpointID,
				Cookie:     map[string]string{"serial": "abc"},
			},
			Payload: map[string]any{"brightness": float64(42)},
		},
	}
}

func TestMatches_PrimaryIDTakesPrecedence(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1")
	d := &matcherDevice{
		testDevice: testDevice{id: "1"},
		match:      func(alexa.Event) bool { return false },
	}

	if !Matches(d, event) {
		t.Error("expected primary id match to win over a rejecting matcher")
	}
}

func TestMatches_FallsBackToMatcher(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "other")

	accepting := &matcherDevice{testDevice: testDevice{id: "1"}, match: func(alexa.Event) bool { return true }}
	rejecting := &matcherDevice{testDevice: testDevice{id: "1"}, match: func(alexa.Event) bool { return false }}

	if !Matches(accepting, event) {
		t.Error("expected accepting matcher to match")
	}
	if Matches(rejecting, event) {
		t.Error("expected rejecting matcher not to match")
	}
}

func TestMatches_DefaultIsTrue(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "unknown")
	d := &testDevice{id: "1"}

	if !Matches(d, event) {
		t.Error("expected device without matcher to match any event")
	}
}

func TestSendSignal_InvokesHandlerWithDirective(t *testing.T) {
	event := controlEvent(alexa.NamespaceBrightnessController, alexa.NameSetBrightness, "1")
	d := &testDevice{id: "1", Base: NewBase(event)}

	var got alexa.Directive
	want := d.Response()
	d.behaviors = func() BehaviorTable {
		return BehaviorTable{
			alexa.NamespaceBrightnessController: {
				alexa.NameSetBrightness: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
					got = directive
					return want, nil
				},
			},
		}
	}

	resp, err := SendSignal(context.Background(), d)
	if err != nil {
		t.Fatalf("SendSignal returned error: %v", err)
	}
	if resp != want {
		t.Error("expected handler response to be returned unchanged")
	}
	if got.Payload["brightness"] != float64(42) {
		t.Errorf("expected handler to receive directive payload, got %v", got.Payload)
	}
}

func TestSendSignal_EmptyBehavior(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1")
	d := &testDevice{id: "1", Base: NewBase(event)}

	_, err := SendSignal(context.Background(), d)
	if !errors.Is(err, ErrEmptyBehavior) {
		t.Errorf("expected ErrEmptyBehavior, got %v", err)
	}
}

func TestSendSignal_MissingEntries(t *testing.T) {
	noop := func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
		return &alexa.Response{}, nil
	}
	table := BehaviorTable{
		alexa.NamespacePowerController: {alexa.NameTurnOn: noop},
	}

	tests := []struct {
		name      string
		namespace string
		directive string
	}{
		{"missing namespace", alexa.NamespaceBrightnessController, alexa.NameSetBrightness},
		{"missing name", alexa.NamespacePowerController, alexa.NameTurnOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &testDevice{
				id:        "1",
				Base:      NewBase(controlEvent(tt.namespace, tt.directive, "1")),
				behaviors: func() BehaviorTable { return table },
			}

			_, err := SendSignal(context.Background(), d)
			if !errors.Is(err, ErrNoBehavior) {
				t.Errorf("expected ErrNoBehavior, got %v", err)
			}
		})
	}
}

func TestSendSignal_PropagatesHandlerError(t *testing.T) {
	cloudErr := errors.New("device cloud unavailable")
	d := &testDevice{
		id:   "1",
		Base: NewBase(controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1")),
		behaviors: func() BehaviorTable {
			return BehaviorTable{
				alexa.NamespacePowerController: {
					alexa.NameTurnOn: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
						return nil, cloudErr
					},
				},
			}
		},
	}

	_, err := SendSignal(context.Background(), d)
	if !errors.Is(err, cloudErr) {
		t.Errorf("expected handler error, got %v", err)
	}
}

func TestSendSignal_NilResponse(t *testing.T) {
	d := &testDevice{
		id:   "1",
		Base: NewBase(controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1")),
		behaviors: func() BehaviorTable {
			return BehaviorTable{
				alexa.NamespacePowerController: {
					alexa.NameTurnOn: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
						return nil, nil
					},
				},
			}
		},
	}

	_, err := SendSignal(context.Background(), d)
	if !errors.Is(err, ErrNilResponse) {
		t.Errorf("expected ErrNilResponse, got %v", err)
	}
}

func TestSendSignal_FetchesBehaviorEachCall(t *testing.T) {
	calls := 0
	d := &testDevice{
		id:   "1",
		Base: NewBase(controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1")),
	}
	d.behaviors = func() BehaviorTable {
		calls++
		return BehaviorTable{
			alexa.NamespacePowerController: {
				alexa.NameTurnOn: func(ctx context.Context, directive alexa.Directive) (*alexa.Response, error) {
					return d.Response(), nil
				},
			},
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := SendSignal(context.Background(), d); err != nil {
			t.Fatalf("SendSignal returned error: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("expected behavior table to be fetched twice, got %d", calls)
	}
}

func TestBuildEndpoint_MapsDescriptor(t *testing.T) {
	d := &discoverableDevice{
		testDevice: testDevice{id: "1"},
		descriptor: Descriptor{
			EndpointID:      "1",
			Name:            "mylightdevice",
			Description:     "description",
			ManufactureName: "manu",
			FriendlyName:    "fname",
			Cookie:          map[string]string{"hoge": "hoge"},
		},
		categories: []string{alexa.CategoryLight},
		capabilities: []alexa.Capability{
			alexa.BrightnessControllerPreset(),
			alexa.PowerControllerPreset(),
			alexa.FanOnLightToggleControllerPreset(),
		},
	}

	endpoint, err := BuildEndpoint(d)
	if err != nil {
		t.Fatalf("BuildEndpoint returned error: %v", err)
	}

	if endpoint.EndpointID != "1" {
		t.Errorf("expected endpointId '1', got %q", endpoint.EndpointID)
	}
	if endpoint.ManufacturerName != "manu" {
		t.Errorf("expected manufacturerName 'manu', got %q", endpoint.ManufacturerName)
	}
	if endpoint.Description != "manu" {
		t.Errorf("expected description to carry the manufacturer name, got %q", endpoint.Description)
	}
	if endpoint.FriendlyName != "fname" {
		t.Errorf("expected friendlyName 'fname', got %q", endpoint.FriendlyName)
	}
	if endpoint.Cookie["hoge"] != "hoge" {
		t.Errorf("expected cookie passthrough, got %v", endpoint.Cookie)
	}
	if len(endpoint.DisplayCategories) != 1 || endpoint.DisplayCategories[0] != alexa.CategoryLight {
		t.Errorf("expected [LIGHT], got %v", endpoint.DisplayCategories)
	}

	wantOrder := []string{
		alexa.NamespaceBrightnessController,
		alexa.NamespacePowerController,
		alexa.NamespaceToggleController,
	}
	if len(endpoint.Capabilities) != len(wantOrder) {
		t.Fatalf("expected %d capabilities, got %d", len(wantOrder), len(endpoint.Capabilities))
	}
	for i, c := range endpoint.Capabilities {
		if c.Interface != wantOrder[i] {
			t.Errorf("capability %d: expected %s, got %s", i, wantOrder[i], c.Interface)
		}
	}
}

func TestBuildEndpoint_CookieIsCopied(t *testing.T) {
	cookie := map[string]string{"serial": "abc"}
	d := &discoverableDevice{
		testDevice: testDevice{id: "1"},
		descriptor: Descriptor{EndpointID: "1", ManufactureName: "manu", Cookie: cookie},
	}

	endpoint, err := BuildEndpoint(d)
	if err != nil {
		t.Fatalf("BuildEndpoint returned error: %v", err)
	}
	endpoint.Cookie["serial"] = "changed"

	if cookie["serial"] != "abc" {
		t.Errorf("expected descriptor cookie to be unchanged, got %v", cookie)
	}
}

func TestBuildEndpoint_FallsBackToDeviceID(t *testing.T) {
	d := &discoverableDevice{
		testDevice: testDevice{id: "device-7"},
		descriptor: Descriptor{ManufactureName: "manu"},
	}

	endpoint, err := BuildEndpoint(d)
	if err != nil {
		t.Fatalf("BuildEndpoint returned error: %v", err)
	}
	if endpoint.EndpointID != "device-7" {
		t.Errorf("expected endpointId from device, got %q", endpoint.EndpointID)
	}
}

func TestBuildEndpoint_Idempotent(t *testing.T) {
	d := &discoverableDevice{
		testDevice:   testDevice{id: "1"},
		descriptor:   Descriptor{EndpointID: "1", ManufactureName: "manu", FriendlyName: "fname", Cookie: map[string]string{"a": "b"}},
		categories:   []string{alexa.CategoryFan},
		capabilities: []alexa.Capability{alexa.FanRangeControllerPreset(), alexa.PowerControllerPreset()},
	}

	first, err := BuildEndpoint(d)
	if err != nil {
		t.Fatalf("BuildEndpoint returned error: %v", err)
	}
	second, err := BuildEndpoint(d)
	if err != nil {
		t.Fatalf("BuildEndpoint returned error: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("expected identical output.\nFirst:  %s\nSecond: %s", a, b)
	}
}

func TestBuildEndpoint_NotDiscoverable(t *testing.T) {
	tests := []struct {
		name   string
		device Device
	}{
		{"no descriptive methods", &testDevice{id: "1"}},
		{"missing capabilities", &partialDevice{testDevice: testDevice{id: "2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildEndpoint(tt.device)
			if !errors.Is(err, ErrNotDiscoverable) {
				t.Errorf("expected ErrNotDiscoverable, got %v", err)
			}
		})
	}
}
