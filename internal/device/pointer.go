package device

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
	"github.com/qri-io/jsonpointer"
)

// ErrPointerUnresolved is returned when a pointer selects nothing in the event
var ErrPointerUnresolved = errors.New("pointer does not resolve")

// EvaluatePointer resolves an RFC 6901 pointer such as
// "/directive/endpoint/cookie/serial" against the wire form of event.
func EvaluatePointer(event alexa.Event, pointer string) (any, error) {
	ptr, err := jsonpointer.Parse(pointer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pointer %q: %w", pointer, err)
	}

	doc, err := wireForm(event)
	if err != nil {
		return nil, err
	}

	// Absent members evaluate to nil without an error
	value, err := ptr.Eval(doc)
	if err != nil || value == nil {
		return nil, fmt.Errorf("%w: %s", ErrPointerUnresolved, pointer)
	}
	return value, nil
}

// wireForm round-trips event through JSON so pointers address the field
// names the voice platform sends
func wireForm(event alexa.Event) (map[string]any, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return doc, nil
}

// MatchPointer reports whether the value at pointer in event equals want.
// Non-string values are compared by their fmt representation. An
// unresolved pointer never matches.
func MatchPointer(event alexa.Event, pointer, want string) bool {
	value, err := EvaluatePointer(event, pointer)
	if err != nil {
		return false
	}
	if s, ok := value.(string); ok {
		return s == want
	}
	return fmt.Sprint(value) == want
}
