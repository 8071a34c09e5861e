package realtime

import "encoding/json"

// Client and server exchange envelopes of the form
// {"event": "...", "data": ...} over the websocket.
const (
	// client -> server
	EventCreateCart       = "createCart"
	EventAddProductToCart = "addProductToCart"
	EventFinishPurchase   = "finishPurchase"

	// server -> client
	EventProducts    = "products"
	EventCartCreated = "cartCreated"
	EventRefreshCart = "refreshCart"
)

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewEnvelope(event string, data any) (*Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Envelope{Event: event, Data: raw}, nil
}
