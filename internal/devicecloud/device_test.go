package devicecloud

import (
	"context"
	"errors"
	"testing"

	"github.com/jarrod-lowe/smarthome-skill-core/internal/device"
	"github.com/jarrod-lowe/smarthome-skill-core/internal/registry"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
	"github.com/jarrod-lowe/smarthome-skill-core/pkg/devicecontract"
)

// mockInvoker records forwarded requests
type mockInvoker struct {
	requests []devicecontract.InvocationRequest
	targets  []registry.Target
	resp     *alexa.Response
	err      error
}

func (m *mockInvoker) Invoke(ctx context.Context, target registry.Target, request devicecontract.InvocationRequest) (*alexa.Response, error) {
	m.requests = append(m.requests, request)
	m.targets = append(m.targets, target)
	return m.resp, m.err
}

func lightRecord(id string) registry.EndpointRecord {
	return registry.EndpointRecord{
		EndpointID:        id,
		Name:              "light " + id,
		Description:       "desc",
		ManufacturerName:  "manu",
		FriendlyName:      "Light " + id,
		DisplayCategories: []string{alexa.CategoryLight},
		Cookie:            map[string]string{"serial": "S-" + id},
		Capabilities:      []alexa.Capability{alexa.PowerControllerPreset(), alexa.BrightnessControllerPreset()},
		Behaviors: map[string]map[string]registry.Target{
			alexa.NamespacePowerController: {
				alexa.NameTurnOn:  {InvocationType: registry.InvocationTypeLambda, InvokeTarget: "power-on"},
				alexa.NameTurnOff: {InvocationType: registry.InvocationTypeLambda, InvokeTarget: "power-off"},
			},
		},
	}
}

func controlEvent(namespace, name, endpointID string, cookie map[string]string) alexa.Event {
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
				Cookie:     cookie,
			},
			Payload: map[string]any{},
		},
	}
}

func TestDevice_IsDiscoverable(t *testing.T) {
	var d device.Device = NewDevice(alexa.Event{}, lightRecord("1"), "user-1", &mockInvoker{})
	if _, ok := d.(device.Discoverable); !ok {
		t.Fatal("Expected devicecloud.Device to implement device.Discoverable")
	}
}

func TestDevice_BuildEndpointFromRecord(t *testing.T) {
	d := NewDevice(alexa.Event{}, lightRecord("1"), "user-1", &mockInvoker{})

	endpoint, err := device.BuildEndpoint(d)
	if err != nil {
		t.Fatalf("BuildEndpoint returned error: %v", err)
	}

	if endpoint.EndpointID != "1" || endpoint.FriendlyName != "Light 1" || endpoint.ManufacturerName != "manu" {
		t.Errorf("Unexpected endpoint: %+v", endpoint)
	}
	if endpoint.Cookie["serial"] != "S-1" {
		t.Errorf("Expected cookie passthrough, got %v", endpoint.Cookie)
	}
	if len(endpoint.Capabilities) != 2 || endpoint.Capabilities[0].Interface != alexa.NamespacePowerController {
		t.Errorf("Expected record capabilities in order, got %+v", endpoint.Capabilities)
	}
}

func TestDevice_DescriptorDoesNotAliasRecordCookie(t *testing.T) {
	record := lightRecord("1")
	d := NewDevice(alexa.Event{}, record, "user-1", &mockInvoker{})

	endpoint, err := device.BuildEndpoint(d)
	if err != nil {
		t.Fatalf("BuildEndpoint returned error: %v", err)
	}
	endpoint.Cookie["serial"] = "changed"
	d.Descriptor().Cookie["serial"] = "changed"

	if record.Cookie["serial"] != "S-1" {
		t.Errorf("Expected registry cookie to be unchanged, got %v", record.Cookie)
	}
}

func TestDevice_SendSignalForwardsDirective(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOff, "1", nil)
	invoker := &mockInvoker{}
	d := NewDevice(event, lightRecord("1"), "user-1", invoker)
	invoker.resp = d.Response()

	resp, err := device.SendSignal(context.Background(), d)
	if err != nil {
		t.Fatalf("SendSignal returned error: %v", err)
	}
	if resp != invoker.resp {
		t.Error("Expected device-cloud response to be returned unchanged")
	}

	if len(invoker.requests) != 1 {
		t.Fatalf("Expected 1 forwarded request, got %d", len(invoker.requests))
	}
	req := invoker.requests[0]
	if req.UserID != "user-1" || req.EndpointID != "1" {
		t.Errorf("Unexpected request: %+v", req)
	}
	if req.RequestID == "" {
		t.Error("Expected a request id")
	}
	if req.Directive.Header.Name != alexa.NameTurnOff {
		t.Errorf("Expected TurnOff directive, got %s", req.Directive.Header.Name)
	}
	if invoker.targets[0].InvokeTarget != "power-off" {
		t.Errorf("Expected power-off target, got %s", invoker.targets[0].InvokeTarget)
	}
}

func TestDevice_SendSignalUnregisteredDirective(t *testing.T) {
	event := controlEvent(alexa.NamespaceBrightnessController, alexa.NameSetBrightness, "1", nil)
	invoker := &mockInvoker{}
	d := NewDevice(event, lightRecord("1"), "user-1", invoker)

	_, err := device.SendSignal(context.Background(), d)
	if !errors.Is(err, device.ErrNoBehavior) {
		t.Errorf("Expected ErrNoBehavior, got %v", err)
	}
	if len(invoker.requests) != 0 {
		t.Error("Expected no device-cloud call")
	}
}

func TestDevice_SendSignalPropagatesInvokerError(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1", nil)
	d := NewDevice(event, lightRecord("1"), "user-1", &mockInvoker{err: ErrDeviceCloud})

	_, err := device.SendSignal(context.Background(), d)
	if !errors.Is(err, ErrDeviceCloud) {
		t.Errorf("Expected ErrDeviceCloud, got %v", err)
	}
}

func TestDevice_SendSignalFillsMissingEndpoint(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1", nil)
	invoker := &mockInvoker{resp: &alexa.Response{Event: alexa.ResponseEvent{
		Header: alexa.Header{Namespace: alexa.NamespaceAlexa, Name: alexa.NameResponse},
	}}}
	d := NewDevice(event, lightRecord("1"), "user-1", invoker)

	resp, err := device.SendSignal(context.Background(), d)
	if err != nil {
		t.Fatalf("SendSignal returned error: %v", err)
	}
	if resp.Event.Endpoint == nil || resp.Event.Endpoint.EndpointID != "1" {
		t.Errorf("Expected inbound endpoint to be echoed, got %+v", resp.Event.Endpoint)
	}
}

func TestDevice_Match(t *testing.T) {
	record := lightRecord("1")
	record.Match = &registry.MatchRule{Pointer: "/directive/endpoint/cookie/serial", Value: "S-1"}

	matching := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "legacy-id", map[string]string{"serial": "S-1"})
	other := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "legacy-id", map[string]string{"serial": "S-2"})

	if !NewDevice(matching, record, "user-1", &mockInvoker{}).Match(matching) {
		t.Error("Expected match rule to claim the directive")
	}
	if NewDevice(other, record, "user-1", &mockInvoker{}).Match(other) {
		t.Error("Expected match rule to reject the directive")
	}
	if NewDevice(matching, lightRecord("1"), "user-1", &mockInvoker{}).Match(matching) {
		t.Error("Expected device without match rule not to claim foreign directives")
	}
}

func TestDevice_AsyncResponseOption(t *testing.T) {
	event := controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1", map[string]string{"serial": "S-1"})
	d := NewDevice(event, lightRecord("1"), "user-1", &mockInvoker{}, device.WithAsyncResponse())

	if d.ResponseEndpoint().Scope == nil {
		t.Error("Expected async response to echo the scope")
	}
}

func newTestCatalog(t *testing.T, records ...registry.EndpointRecord) *Catalog {
	t.Helper()
	reg := registry.NewRegistry()
	for _, record := range records {
		if err := reg.AddRecord(record); err != nil {
			t.Fatalf("AddRecord returned error: %v", err)
		}
	}
	return NewCatalog(reg, "user-1", &mockInvoker{})
}

func TestCatalog_Endpoints(t *testing.T) {
	catalog := newTestCatalog(t, lightRecord("b"), lightRecord("a"))

	endpoints, err := catalog.Endpoints(alexa.Event{})
	if err != nil {
		t.Fatalf("Endpoints returned error: %v", err)
	}
	if len(endpoints) != 2 || endpoints[0].EndpointID != "b" || endpoints[1].EndpointID != "a" {
		t.Errorf("Expected endpoints [b a], got %+v", endpoints)
	}
}

func TestCatalog_EndpointsEmptyRegistry(t *testing.T) {
	endpoints, err := newTestCatalog(t).Endpoints(alexa.Event{})
	if err != nil {
		t.Fatalf("Endpoints returned error: %v", err)
	}
	if endpoints == nil || len(endpoints) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", endpoints)
	}
}

func TestCatalog_Find(t *testing.T) {
	matched := lightRecord("m")
	matched.Match = &registry.MatchRule{Pointer: "/directive/endpoint/cookie/serial", Value: "legacy"}
	catalog := newTestCatalog(t, lightRecord("1"), matched)

	tests := []struct {
		name   string
		event  alexa.Event
		wantID string
	}{
		{"by endpoint id", controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "1", nil), "1"},
		{"by match rule", controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "old", map[string]string{"serial": "legacy"}), "m"},
		{"not found", controlEvent(alexa.NamespacePowerController, alexa.NameTurnOn, "old", nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := catalog.Find(tt.event)
			if tt.wantID == "" {
				if d != nil {
					t.Errorf("Expected no device, got %s", d.EndpointID())
				}
				return
			}
			if d == nil {
				t.Fatalf("Expected device %s, got nil", tt.wantID)
			}
			if d.EndpointID() != tt.wantID {
				t.Errorf("Expected device %s, got %s", tt.wantID, d.EndpointID())
			}
			if d.Event().Directive.Header.MessageID != "id1" {
				t.Error("Expected device to be bound to the inbound event")
			}
		})
	}
}
