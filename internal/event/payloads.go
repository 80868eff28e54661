package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterPayload announces a peer's identity and language preferences.
type RegisterPayload struct {
	UserID         string `json:"userId" validate:"required"`
	SpeakLanguage  string `json:"speakLanguage" validate:"required"`
	ListenLanguage string `json:"listenLanguage" validate:"required"`
}

// CallRequestPayload asks the relay to ring another registered user.
type CallRequestPayload struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// CallAcceptPayload confirms a pending call.
type CallAcceptPayload struct {
	RoomID string `json:"roomId" validate:"required"`
}

// CallEndPayload carries the room id for informational symmetry only.
// The authoritative room is read from the sender's own connection state.
type CallEndPayload struct {
	RoomID string `json:"roomId"`
}

// DecodePayload unmarshals the envelope payload into dst and validates it.
func (e Envelope) DecodePayload(dst any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s: %w", e.Type, ErrEmptyPayload)
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate %s payload: %w", e.Type, err)
	}
	return nil
}

// ErrEmptyPayload reports an inbound event that requires a payload but
// carried none.
var ErrEmptyPayload = errors.New("missing payload")

// Outbound payload shapes.

// RegisterAck acknowledges a successful registration.
type RegisterAck struct {
	Success  bool   `json:"success"`
	ClientID string `json:"clientId"`
	Message  string `json:"message"`
}

// ErrorPayload reports a non-fatal protocol error to one connection.
type ErrorPayload struct {
	Message string `json:"message"`
}

// TypingNotice tells a call partner who is typing.
type TypingNotice struct {
	UserID string `json:"userId"`
}

// CallRequestNotice rings the callee.
type CallRequestNotice struct {
	From   string `json:"from"`
	RoomID string `json:"roomId"`
}

// CallAcceptNotice confirms the call to both parties.
type CallAcceptNotice struct {
	RoomID string `json:"roomId"`
}

// UserInfo is one roster entry.
type UserInfo struct {
	UserID         string `json:"userId"`
	SpeakLanguage  string `json:"speakLanguage"`
	ListenLanguage string `json:"listenLanguage"`
	InCall         bool   `json:"inCall"`
}

// UserListPayload is the full roster broadcast to every registered peer.
type UserListPayload struct {
	Users []UserInfo `json:"users"`
}
