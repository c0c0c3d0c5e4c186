package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtEncodesBigEndian(t *testing.T) {
	tok := At(time.Unix(0, 0x0102030405060708))
	assert.Equal(t, Token{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, tok)
}

func TestFromBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, Token{1, 2, 3, 4, 5, 6, 7, 8}, FromBytes(buf))
}

func TestElapsed(t *testing.T) {
	base := time.Unix(1700000000, 0)

	tests := []struct {
		name   string
		since  Token
		to     Token
		want   time.Duration
		wantOK bool
	}{
		{"identical tokens", At(base), At(base), 0, true},
		{"half a second", At(base), At(base.Add(500 * time.Millisecond)), 500 * time.Millisecond, true},
		{"exactly one second", At(base), At(base.Add(time.Second)), time.Second, true},
		{"token from the future", At(base.Add(time.Nanosecond)), At(base), 0, false},
		{"token far in the future", At(base.Add(time.Hour)), At(base), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Elapsed(tt.since, tt.to)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNowIsMonotonicallyComparable(t *testing.T) {
	first := Now()
	second := Now()

	// Sampling order must never look like clock skew.
	_, ok := Elapsed(first, second)
	assert.True(t, ok)
}
