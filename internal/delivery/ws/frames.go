// Package ws relays canvas edits between connected browsers over websocket.
package ws

import (
	"encoding/json"

	"github.com/Epiphane/wedding-site/internal/domain"
)

// Client frame types.
const (
	TypeIdentitySet   = "identity.set"
	TypeStickerPlace  = "sticker.place"
	TypeStickerUpdate = "sticker.update"
	TypeCanvasClear   = "canvas.clear"
)

// Server frame types.
const (
	TypeIdentityResult = "identity.result"
	TypeAck            = "ack"
	TypeStickerPlaced  = "sticker.placed"
	TypeStickerUpdated = "sticker.updated"
	TypeCanvasCleared  = "canvas.cleared"
	TypeError          = "error"
)

// Error codes carried by error frames.
const (
	CodeUnidentified      = "UNIDENTIFIED"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL"
	CodeResourceExhausted = "RESOURCE_EXHAUSTED"
)

// Frame is the envelope for every message in both directions.
type Frame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// IdentityRequest is the payload of identity.set.
type IdentityRequest struct {
	Name string `json:"name"`
}

// IdentityResult is the payload of identity.result. Guest is set when Resolved.
type IdentityResult struct {
	Resolved bool          `json:"resolved"`
	Guest    *domain.Guest `json:"guest,omitempty"`
}

// UpdateRequest is the payload of sticker.update.
type UpdateRequest struct {
	ID int64 `json:"id"`
	domain.StickerPatch
}

// ErrorPayload is the payload of error frames.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newFrame marshals payload into a frame; a nil payload yields an empty object.
func newFrame(typ, requestID string, payload any) (Frame, error) {
	if payload == nil {
		payload = struct{}{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Type: typ, RequestID: requestID, Payload: raw}, nil
}
