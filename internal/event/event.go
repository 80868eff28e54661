package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Inbound event types.
const (
	TypeRegister    = "register"
	TypeTranslation = "translation"
	TypeTyping      = "typing"
	TypeCallRequest = "callRequest"
	TypeCallAccept  = "callAccept"
	TypeCallReject  = "callReject"
	TypeCallEnd     = "callEnd"
)

// Outbound-only event types.
const (
	TypeError    = "error"
	TypeUserList = "userList"
)

// Envelope is the frame exchanged in both directions.
type Envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Decode parses a raw inbound frame into an Envelope.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

// Encode builds an outbound frame, stamping it at send time.
func Encode(typ string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
	}

	env := Envelope{
		Type:      typ,
		Payload:   raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", typ, err)
	}
	return data, nil
}

// ForwardedTranslation merges {"forwarded": true} into an object payload.
// Non-object payloads are returned verbatim; opaqueness wins over annotation.
func ForwardedTranslation(payload json.RawMessage) json.RawMessage {
	var obj map[string]any
	if err := json.Unmarshal(payload, &obj); err != nil || obj == nil {
		return payload
	}

	obj["forwarded"] = true

	out, err := json.Marshal(obj)
	if err != nil {
		return payload
	}
	return out
}
