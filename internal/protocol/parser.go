package protocol

import (
	"strconv"
	"strings"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/errors"
)

const fieldCount = 5

// Parse converts one textual record into a Snapshot. The format is exactly
// five comma-separated numeric fields in fixed order:
//
//	CPU%,CPU_TEMP_C,RAM%,GPU%,GPU_TEMP_C
//
// Fewer than five fields rejects the record and the caller keeps its
// previous snapshot. Individual fields parse permissively: a field that
// does not begin with a valid number yields 0. No range clamping happens
// here; bar widths clamp at render time.
func Parse(line string) (Snapshot, error) {
	parts := strings.SplitN(line, ",", fieldCount)
	if len(parts) < fieldCount {
		return Snapshot{}, errors.New().New(ErrMalformedRecord).WithData(line)
	}

	return Snapshot{
		CPULoad:      parseFloatPrefix(parts[0]),
		TemperatureC: parseFloatPrefix(parts[1]),
		RAMLoad:      parseFloatPrefix(parts[2]),
		GPULoad:      parseFloatPrefix(parts[3]),
		GPUTempC:     parseFloatPrefix(parts[4]),
	}, nil
}

// parseFloatPrefix mirrors Arduino String::toFloat: the longest valid
// leading decimal number parses, anything after it is ignored, and a field
// with no leading number is 0. This permissiveness is deliberate
// compatibility behavior, not missing validation.
func parseFloatPrefix(s string) float64 {
	s = strings.TrimSpace(s)

	end := 0
	seenDigit := false
	seenDot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && i == 0:
		case c == '.' && !seenDot:
			seenDot = true
		default:
			i = len(s)
			continue
		}
		end = i + 1
	}

	if !seenDigit {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
