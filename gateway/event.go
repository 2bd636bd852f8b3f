package gateway

import (
	"encoding/json"
	"fmt"
)

// Event types this service understands. Anything else is acknowledged and
// ignored by the webhook handler.
const (
	EventCheckoutCompleted = "checkout.session.completed"
)

// Event is the processor's webhook envelope. Data.Object is only meaningful
// for checkout events; unrecognized types keep their id and type so the
// handler can log and skip them explicitly.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

// Session returns the checkout session embedded in a checkout event.
func (e *Event) Session() *CheckoutSession {
	return &e.Data.Object
}

// ParseEvent decodes a webhook payload into the known envelope shape. A body
// that is not valid JSON or carries no event type is rejected rather than
// probed field by field.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed event payload: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("event payload has no type")
	}
	return &event, nil
}
