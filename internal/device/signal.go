package device

import (
	"context"
	"fmt"

	"github.com/jarrod-lowe/smarthome-skill-core/pkg/alexa"
)

// SendSignal runs the handler registered for the bound directive's
// namespace and name, and returns its response unchanged. The behavior table
// is fetched from the device on every call.
func SendSignal(ctx context.Context, d Device) (*alexa.Response, error) {
	directive := d.Event().Directive
	namespace, name := directive.Header.Namespace, directive.Header.Name

	behaviors := d.Behavior()
	if len(behaviors) == 0 {
		return nil, ErrEmptyBehavior
	}

	byName, ok := behaviors[namespace]
	if !ok {
		return nil, fmt.Errorf("%w: namespace %s", ErrNoBehavior, namespace)
	}

	handler, ok := byName[name]
	if !ok || handler == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoBehavior, namespace, name)
	}

	resp, err := handler(ctx, directive)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrNilResponse, namespace, name)
	}

	return resp, nil
}
