package handshake

import (
	"crypto/rsa"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/fobware/keyless/crypto"
	"github.com/fobware/keyless/freshness"
	"github.com/fobware/keyless/wire"
)

type vehicleState int

const (
	vehicleIdle vehicleState = iota
	vehicleResponded
)

// Vehicle is the verifying role. It exclusively owns the public half of
// the pair and responds Success at most once.
type Vehicle struct {
	key    *rsa.PublicKey
	window time.Duration
	clock  Clock
	log    *zap.Logger
	state  vehicleState
}

// NewVehicle creates a vehicle in the idle state. A non-positive window
// falls back to the default freshness window; a nil clock means the
// system clock; a nil logger silences trace output.
func NewVehicle(key *rsa.PublicKey, window time.Duration, clock Clock, log *zap.Logger) *Vehicle {
	if window <= 0 {
		window = freshness.Window
	}
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Vehicle{key: key, window: window, clock: clock, log: log}
}

// Handle evaluates one frame from the medium. Every rejection (unknown
// tag, short payload, stale or future token, invalid signature) is
// silent: the frame is dropped and no response is emitted, so an
// observer cannot tell why validation failed.
func (v *Vehicle) Handle(message []byte) []byte {
	msg, ok := wire.Decode(message)
	if !ok || msg.Kind != wire.CommandOpen {
		return nil
	}
	if len(msg.Payload) < freshness.Length+1 {
		return nil
	}
	if v.state != vehicleIdle {
		return nil
	}

	v.log.Info("vehicle received CommandOpen",
		zap.String("frame", hex.EncodeToString(message)))

	token := freshness.FromBytes(msg.Payload[:freshness.Length])
	age, ok := freshness.Elapsed(token, freshness.At(v.clock()))
	if !ok || age >= v.window {
		return nil
	}

	if !crypto.Verify(v.key, crypto.Digest(token[:]), msg.Payload[freshness.Length:]) {
		return nil
	}

	v.state = vehicleResponded
	v.log.Info("vehicle unlocking", zap.Duration("token_age", age))
	return wire.Encode(wire.Success, nil)
}

// Responded reports whether the vehicle has already acknowledged a
// CommandOpen in this handshake.
func (v *Vehicle) Responded() bool {
	return v.state == vehicleResponded
}
