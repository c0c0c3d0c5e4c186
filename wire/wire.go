// Package wire implements the framing shared by both sides of the
// keyless-entry handshake.
//
// A frame is a single kind tag byte followed by the payload:
//
//	byte[0]   - kind tag (CommandOpen=0x01, Success=0x04)
//	byte[1..] - payload, layout depends on the kind
//
// For CommandOpen the payload is the 8-byte freshness token followed by
// the signature block; Success carries no payload at all.
package wire

// Kind identifies a frame on the medium.
type Kind byte

const (
	// CommandOpen is broadcast by the fob to request unlocking.
	CommandOpen Kind = 0x01
	// Success is broadcast by the vehicle after a CommandOpen validates.
	Success Kind = 0x04
)

// TokenLength is the size of the freshness token a CommandOpen payload
// starts with.
const TokenLength = 8

// Message is a decoded frame.
type Message struct {
	Kind    Kind
	Payload []byte
}

// Encode frames a payload under a kind tag.
func Encode(kind Kind, payload []byte) []byte {
	buf := make([]byte, 0, 1+len(payload))
	buf = append(buf, byte(kind))
	return append(buf, payload...)
}

// Decode parses a frame. It reports false for an empty buffer or a tag
// byte that maps to no known kind. Payload length is not validated here:
// the required length differs by kind, so that check belongs to the role
// processing the frame.
func Decode(buf []byte) (Message, bool) {
	if len(buf) == 0 {
		return Message{}, false
	}
	switch kind := Kind(buf[0]); kind {
	case CommandOpen, Success:
		return Message{Kind: kind, Payload: buf[1:]}, true
	default:
		return Message{}, false
	}
}
