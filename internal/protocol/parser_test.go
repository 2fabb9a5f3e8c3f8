package protocol_test

import (
	"testing"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	s, err := protocol.Parse("42.1,55.4,63.2,38.0,67.0")
	require.NoError(t, err)

	assert.Equal(t, 42.1, s.CPULoad)
	assert.Equal(t, 55.4, s.TemperatureC)
	assert.Equal(t, 63.2, s.RAMLoad)
	assert.Equal(t, 38.0, s.GPULoad)
	assert.Equal(t, 67.0, s.GPUTempC)
}

func TestParse_UnavailableSentinels(t *testing.T) {
	s, err := protocol.Parse("10.0,-1.0,20.0,-1.0,-1.0")
	require.NoError(t, err)

	assert.Equal(t, protocol.Unavailable, s.TemperatureC)
	assert.Equal(t, protocol.Unavailable, s.GPULoad)
	assert.Equal(t, protocol.Unavailable, s.GPUTempC)
}

func TestParse_RejectsFewerThanFiveFields(t *testing.T) {
	for _, line := range []string{"", "42.1", "42.1,55.4", "42.1,55.4,63.2", "42.1,55.4,63.2,38.0"} {
		_, err := protocol.Parse(line)
		assert.Error(t, err, "line %q should be rejected", line)
	}
}

// Unparsable fields substitute zero instead of rejecting the record. This
// mirrors the Arduino toFloat conversion the wire peers were built
// against; tightening it is a protocol change, not a bug fix.
func TestParse_PermissiveFields(t *testing.T) {
	s, err := protocol.Parse("abc,55.4,xyz,38.0,67.0")
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.CPULoad)
	assert.Equal(t, 0.0, s.RAMLoad)
	assert.Equal(t, 55.4, s.TemperatureC)
}

func TestParse_NumericPrefixWins(t *testing.T) {
	s, err := protocol.Parse("42.1junk,55,63,38,67")
	require.NoError(t, err)

	assert.Equal(t, 42.1, s.CPULoad)
}

func TestParse_ExtraCommasFoldIntoLastField(t *testing.T) {
	s, err := protocol.Parse("1,2,3,4,5,6,7")
	require.NoError(t, err)

	// The fifth field is the remainder "5,6,7"; its numeric prefix parses.
	assert.Equal(t, 5.0, s.GPUTempC)
}

func TestSnapshot_Echo(t *testing.T) {
	s := protocol.Snapshot{CPULoad: 42.1, TemperatureC: 55.4, RAMLoad: 63.2, GPULoad: 38, GPUTempC: 67}

	assert.Equal(t, "CPU:42.10,TEMP:55.40,RAM:63.20,GPU:38.00,G-TEMP:67.00", string(s.Echo()))
}
