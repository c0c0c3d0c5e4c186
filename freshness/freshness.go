// Package freshness implements the timestamp token that bounds the
// replay window of the handshake.
//
// A token is the big-endian encoding of a nanosecond clock reading.
// Tokens are compared only by unsigned checked subtraction: a token that
// reads later than the reference clock is invalid, never clamped.
package freshness

import (
	"encoding/binary"
	"time"
)

// Length is the encoded token size in bytes.
const Length = 8

// Window is how old a token may be before the vehicle rejects it. The
// window is the sole anti-replay control: no nonce or monotonic counter
// backs it up, so it assumes delivery latency well under one second.
const Window = time.Second

// Token is a big-endian nanosecond clock reading.
type Token [Length]byte

// At serializes a clock reading as a token.
func At(t time.Time) Token {
	var tok Token
	binary.BigEndian.PutUint64(tok[:], uint64(t.UnixNano()))
	return tok
}

// Now samples the system clock.
func Now() Token {
	return At(time.Now())
}

// FromBytes copies the leading Length bytes of b into a token. The
// caller must have checked that b holds at least Length bytes.
func FromBytes(b []byte) Token {
	var tok Token
	copy(tok[:], b)
	return tok
}

// Elapsed computes to - since as unsigned nanoseconds. It reports false
// when to reads earlier than since: a token from the future must be
// rejected outright rather than wrapping around into a huge duration.
func Elapsed(since, to Token) (time.Duration, bool) {
	a := binary.BigEndian.Uint64(since[:])
	b := binary.BigEndian.Uint64(to[:])
	if b < a {
		return 0, false
	}
	return time.Duration(b - a), true
}
