package render_test

import (
	"testing"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/display"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/freshness"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/protocol"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() (*render.Engine, *display.Framebuffer) {
	fb := display.NewFramebuffer(render.ScreenWidth, render.ScreenHeight)
	e := render.NewEngine(fb)
	e.Layout()
	fb.ResetCounters()
	return e, fb
}

func texts(fb *display.Framebuffer) []string {
	out := make([]string, 0, len(fb.Texts))
	for _, op := range fb.Texts {
		out = append(out, op.Text)
	}
	return out
}

func TestRenderDelta_Idempotent(t *testing.T) {
	e, fb := newEngine()
	s := protocol.Snapshot{CPULoad: 42.1, TemperatureC: 55.4, RAMLoad: 63.2, GPULoad: 38, GPUTempC: 67}

	e.RenderDelta(s)
	opsAfterFirst := fb.Ops
	require.Positive(t, opsAfterFirst)

	e.RenderDelta(s)
	assert.Equal(t, opsAfterFirst, fb.Ops, "an unchanged snapshot must draw nothing")
}

func TestRender_SentinelsShowNA(t *testing.T) {
	e, fb := newEngine()
	s := protocol.Snapshot{CPULoad: 10, TemperatureC: -1, RAMLoad: 20, GPULoad: -1, GPUTempC: -1}

	e.RenderDelta(s)

	na := 0
	for _, text := range texts(fb) {
		assert.NotContains(t, text, "-1", "sentinels must never render numerically")
		if text == "N/A" {
			na++
		}
	}
	assert.Equal(t, 3, na, "both temperatures and the GPU overlay show N/A")
}

func TestRender_DeltaPaintAccounting(t *testing.T) {
	sequence := []float64{50, 100, 50, 0}
	snap := func(cpu float64) protocol.Snapshot {
		return protocol.Snapshot{CPULoad: cpu, TemperatureC: -1, GPULoad: -1, GPUTempC: -1}
	}

	e, fb := newEngine()
	e.RenderDelta(snap(0))
	fb.ResetCounters()
	for _, v := range sequence {
		e.RenderDelta(snap(v))
	}
	deltaPainted := fb.PaintedPixels

	fullPainted := 0
	for _, v := range sequence {
		fe, ffb := newEngine()
		fe.RenderFull(snap(v))
		fullPainted += ffb.PaintedPixels
	}

	assert.Equal(t, fullPainted, deltaPainted,
		"delta accounting must neither under- nor over-paint across 0→50→100→50→0")
}

func TestRender_BarGrowAndShrinkColors(t *testing.T) {
	e, fb := newEngine()
	snap := func(cpu float64) protocol.Snapshot {
		return protocol.Snapshot{CPULoad: cpu, TemperatureC: -1, GPULoad: -1, GPUTempC: -1}
	}

	e.RenderDelta(snap(100))
	grownPixels := fb.PaintedPixels
	require.Positive(t, grownPixels)

	fb.ResetCounters()
	e.RenderDelta(snap(50))

	assert.Equal(t, grownPixels/2, fb.PaintedPixels, "shrinking repaints exactly the vacated half")
}

func TestRender_GPUGatingIsCoarserThanWidth(t *testing.T) {
	e, fb := newEngine()
	s := protocol.Snapshot{GPULoad: 37.2, TemperatureC: -1, GPUTempC: -1}

	e.RenderDelta(s)
	ops := fb.Ops

	// Same rounded integer, slightly different width: the gate suppresses
	// the repaint entirely.
	s.GPULoad = 37.4
	e.RenderDelta(s)
	assert.Equal(t, ops, fb.Ops)

	// Crossing the rounding boundary repaints.
	s.GPULoad = 37.6
	e.RenderDelta(s)
	assert.Greater(t, fb.Ops, ops)
}

func TestRender_TemperatureTenthsGating(t *testing.T) {
	e, fb := newEngine()
	s := protocol.Snapshot{TemperatureC: 55.44, GPULoad: -1, GPUTempC: -1}

	e.RenderDelta(s)
	ops := fb.Ops

	s.TemperatureC = 55.49 // same tenths
	e.RenderDelta(s)
	assert.Equal(t, ops, fb.Ops)

	s.TemperatureC = 55.5
	e.RenderDelta(s)
	assert.Greater(t, fb.Ops, ops)
}

func TestRender_ClampsBarValues(t *testing.T) {
	e, fb := newEngine()

	e.RenderDelta(protocol.Snapshot{CPULoad: 250, TemperatureC: -1, GPULoad: -1, GPUTempC: -1})
	painted := fb.PaintedPixels

	fe, ffb := newEngine()
	fe.RenderDelta(protocol.Snapshot{CPULoad: 100, TemperatureC: -1, GPULoad: -1, GPUTempC: -1})

	assert.Equal(t, ffb.PaintedPixels, painted, "values above 100 clamp to a full bar")
}

func TestDrawStatus(t *testing.T) {
	e, fb := newEngine()

	e.DrawStatus(freshness.Waiting, false)
	assert.Contains(t, texts(fb), "Waiting for data...")
	assert.Contains(t, texts(fb), "BT: unavailable")

	fb.ResetCounters()
	e.DrawStatus(freshness.Fresh, true)
	assert.Contains(t, texts(fb), "RX: fresh")
	assert.Contains(t, texts(fb), "BT: available")

	fb.ResetCounters()
	e.DrawStatus(freshness.Stale, true)
	assert.Contains(t, texts(fb), "RX: stale")
}

func TestBlankAndWakeDriveBacklight(t *testing.T) {
	e, fb := newEngine()

	e.Blank()
	assert.False(t, fb.Backlight)

	e.Wake()
	assert.True(t, fb.Backlight)
}
