// Package handshake implements the two roles of the keyless-entry
// protocol: the fob proves possession of the private key by signing a
// freshness token, and the vehicle validates the token and signature and
// answers Success.
//
// Known weakness, preserved deliberately: the signature covers the
// freshness-token bytes only. The kind tag is not authenticated, and
// covering it would change the bytes on the wire.
package handshake

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fobware/keyless/crypto"
	"github.com/fobware/keyless/freshness"
	"github.com/fobware/keyless/wire"
)

// Clock supplies the instants both roles sample. It exists so tests can
// pin a role to a fixed point in time.
type Clock func() time.Time

type fobState int

const (
	fobIdle fobState = iota
	fobAwaitingResponse
)

// Fob is the proving role. It exclusively owns the private half of the
// pair and is single-shot: one Initiate, at most one completion.
type Fob struct {
	key       *rsa.PrivateKey
	clock     Clock
	log       *zap.Logger
	state     fobState
	attempt   string
	completed bool
}

// NewFob creates a fob in the idle state. A nil clock means the system
// clock; a nil logger silences trace output.
func NewFob(key *rsa.PrivateKey, clock Clock, log *zap.Logger) *Fob {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fob{key: key, clock: clock, log: log}
}

// Initiate builds the CommandOpen frame for one unlock attempt: the
// current freshness token followed by the signature over its digest. It
// moves the fob from idle to awaiting-response and may be called once.
func (f *Fob) Initiate() ([]byte, error) {
	if f.state != fobIdle {
		return nil, fmt.Errorf("handshake already initiated")
	}

	token := freshness.At(f.clock())
	sig, err := crypto.Sign(f.key, crypto.Digest(token[:]))
	if err != nil {
		return nil, fmt.Errorf("failed to sign freshness token: %w", err)
	}

	f.attempt = uuid.NewString()
	f.state = fobAwaitingResponse
	f.log.Info("fob initiating unlock",
		zap.String("attempt", f.attempt),
		zap.Int("signature_bytes", len(sig)))

	payload := make([]byte, 0, freshness.Length+len(sig))
	payload = append(payload, token[:]...)
	payload = append(payload, sig...)
	return wire.Encode(wire.CommandOpen, payload), nil
}

// Handle reacts only to Success: it records completion and never emits a
// further message. Everything else, including the fob's own CommandOpen
// echoed back by the medium, is dropped.
func (f *Fob) Handle(message []byte) []byte {
	msg, ok := wire.Decode(message)
	if !ok || msg.Kind != wire.Success {
		return nil
	}
	if f.state != fobAwaitingResponse || f.completed {
		return nil
	}

	f.completed = true
	f.log.Info("fob received Success", zap.String("attempt", f.attempt))
	return nil
}

// Completed reports whether the vehicle acknowledged the attempt.
func (f *Fob) Completed() bool {
	return f.completed
}
