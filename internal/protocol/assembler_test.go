package protocol_test

import (
	"strings"
	"testing"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(t *testing.T, a *protocol.Assembler, data string) []string {
	t.Helper()
	var lines []string
	for i := 0; i < len(data); i++ {
		if line, ok := a.Feed(data[i]); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestAssembler_EmitsOnTerminator(t *testing.T) {
	a := protocol.NewAssembler()

	lines := feedAll(t, a, "1,2,3,4,5\n")

	require.Len(t, lines, 1)
	assert.Equal(t, "1,2,3,4,5", lines[0])
}

func TestAssembler_ElidesCarriageReturnsAndTrims(t *testing.T) {
	a := protocol.NewAssembler()

	lines := feedAll(t, a, "  1,2,3,4,5\r\n")

	require.Len(t, lines, 1)
	assert.Equal(t, "1,2,3,4,5", lines[0])
}

func TestAssembler_EmitsEmptyLine(t *testing.T) {
	a := protocol.NewAssembler()

	line, ok := a.Feed('\n')

	assert.True(t, ok, "a bare terminator still emits; the parser rejects it")
	assert.Empty(t, line)
}

func TestAssembler_CarriageReturnsDoNotCountTowardCapacity(t *testing.T) {
	a := protocol.NewAssembler()

	// 127 payload bytes plus a flood of \r stays within capacity.
	data := strings.Repeat("\r", 64) + strings.Repeat("a", 127) + strings.Repeat("\r", 64) + "\n"
	lines := feedAll(t, a, data)

	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 127)
}

func TestAssembler_OversizedLineIsLostWhole(t *testing.T) {
	a := protocol.NewAssembler()

	lines := feedAll(t, a, strings.Repeat("x", 130))
	assert.Empty(t, lines, "no emission while the oversized line is still open")

	// The terminator ends the discarded line without emitting it.
	line, ok := a.Feed('\n')
	assert.False(t, ok)
	assert.Empty(t, line)

	// The next record assembles cleanly with no leftover junk.
	lines = feedAll(t, a, "1,2,3,4,5\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "1,2,3,4,5", lines[0])
}

func TestAssembler_ExactCapacityLineSurvives(t *testing.T) {
	a := protocol.NewAssembler()

	payload := strings.Repeat("y", protocol.MaxLineLength)
	lines := feedAll(t, a, payload+"\n")

	require.Len(t, lines, 1)
	assert.Equal(t, payload, lines[0])
}
