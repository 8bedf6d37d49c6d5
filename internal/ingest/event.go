package ingest

// gatewayEvent is the raw JSON structure emitted by the message gateway.
type gatewayEvent struct {
	Kind    string          `json:"kind"`
	Message *gatewayMessage `json:"message,omitempty"`
}

// gatewayMessage is a single channel message event.
type gatewayMessage struct {
	Channel   string `json:"channel"`
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}
