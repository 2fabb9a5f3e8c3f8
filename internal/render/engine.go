package render

import (
	"fmt"
	"math"

	"github.com/mohsinyousufi/wio-pc-monitor/internal/freshness"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/protocol"
)

// Fixed five-field layout for a 320x240 landscape panel.
const (
	ScreenWidth  = 320
	ScreenHeight = 240

	padding    = 8
	labelWidth = 70
	barHeight  = 22

	valueTextPad = 44
	tempTextPad  = 64

	yCPU     = padding + 28
	yRAM     = yCPU + 32
	yGPU     = yRAM + 32
	yGPUTemp = yGPU + 32
	yTemp    = yGPUTemp + 32
	yStatus  = ScreenHeight - 28
)

// cacheUnset marks a draw-cache slot that has never been rendered. It sits
// outside every legal bar width, rounded load and tenths-of-degree value,
// so the first delta pass after a reset repaints the field.
const cacheUnset = math.MinInt32

// drawCache holds the last rendered value per field: pixel widths for the
// three bars, tenths-of-degree integers for the two temperatures, and the
// rounded load gating the GPU bar.
type drawCache struct {
	cpuWidth      int
	ramWidth      int
	gpuWidth      int
	gpuLoad       int
	tempTenths    int
	gpuTempTenths int
}

func (c *drawCache) reset() {
	c.cpuWidth = cacheUnset
	c.ramWidth = cacheUnset
	c.gpuWidth = cacheUnset
	c.gpuLoad = cacheUnset
	c.tempTenths = cacheUnset
	c.gpuTempTenths = cacheUnset
}

// Engine owns the draw cache and computes minimal screen updates. The
// display bus is the bottleneck: every avoided repaint is bandwidth saved.
type Engine struct {
	disp  Display
	cache drawCache
}

func NewEngine(disp Display) *Engine {
	e := &Engine{disp: disp}
	e.cache.reset()
	return e
}

func barGeometry() (x, w int) {
	x = padding + labelWidth + 6
	return x, ScreenWidth - x - padding
}

// Layout paints the header, the static field labels and the empty bar
// tracks. Called once at startup and again on every power wake.
func (e *Engine) Layout() {
	d := e.disp
	d.FillScreen(Black)

	d.DrawText(padding, padding, "Wio PC Monitor", White, Black)
	d.DrawHLine(padding, padding+20, ScreenWidth-2*padding, DarkGrey)

	d.DrawText(padding, yCPU, "CPU:", White, Black)
	d.DrawText(padding, yRAM, "RAM:", White, Black)
	d.DrawText(padding, yGPU, "GPU:", White, Black)
	d.DrawText(padding, yGPUTemp, "G-TEMP:", White, Black)
	d.DrawText(padding, yTemp, "TEMP:", White, Black)

	bx, bw := barGeometry()
	d.FillRect(bx, yCPU, bw, barHeight, DarkGrey)
	d.FillRect(bx, yRAM, bw, barHeight, DarkGrey)
	d.FillRect(bx, yGPU, bw, barHeight, DarkGrey)
}

// ResetCache forces the next delta pass to repaint every field.
func (e *Engine) ResetCache() {
	e.cache.reset()
}

// RenderFull repaints every field unconditionally. Used on the first draw
// and after a power wake.
func (e *Engine) RenderFull(s protocol.Snapshot) {
	e.cache.reset()
	e.RenderDelta(s)
}

// RenderDelta repaints only the fields whose rendered representation
// changed since the last draw.
func (e *Engine) RenderDelta(s protocol.Snapshot) {
	e.updateBar(yCPU, s.CPULoad, loadText(s.CPULoad), Green, &e.cache.cpuWidth)
	e.updateTemp(yTemp, s.TemperatureC, &e.cache.tempTenths)
	e.updateBar(yRAM, s.RAMLoad, loadText(s.RAMLoad), Cyan, &e.cache.ramWidth)

	// The GPU bar gates on the rounded integer changing, a deliberately
	// coarser check than the width delta. The sentinel empties the bar and
	// overlays N/A.
	if g := roundedLoad(s.GPULoad); g != e.cache.gpuLoad {
		v := s.GPULoad
		if v < 0 {
			v = 0
		}
		e.updateBar(yGPU, v, loadText(s.GPULoad), Orange, &e.cache.gpuWidth)
		e.cache.gpuLoad = g
	}

	e.updateTemp(yGPUTemp, s.GPUTempC, &e.cache.gpuTempTenths)
}

// updateBar repaints only the delta segment between the cached and new bar
// widths: growth fills the newly covered pixels in the field color,
// shrinkage restores the vacated pixels to the track color. The numeric
// overlay redraws alongside any width change.
func (e *Engine) updateBar(y int, value float64, overlay string, color Color, lastWidth *int) {
	bx, bw := barGeometry()

	v := math.Min(math.Max(value, 0), 100)
	newWidth := int(float64(bw) * v / 100)

	old := *lastWidth
	forced := old == cacheUnset
	if forced {
		old = 0
	}
	if newWidth == old && !forced {
		return
	}

	if newWidth > old {
		e.disp.FillRect(bx+old, y, newWidth-old, barHeight, color)
	} else if newWidth < old {
		e.disp.FillRect(bx+newWidth, y, old-newWidth, barHeight, DarkGrey)
	}
	*lastWidth = newWidth

	e.disp.DrawTextRight(ScreenWidth-padding, y+barHeight/2,
		overlay, valueTextPad, White, Black)
}

// updateTemp redraws a temperature value only when its tenths-of-degree
// integer differs from the cache. The -1 sentinel renders as "N/A".
func (e *Engine) updateTemp(y int, temp float64, lastTenths *int) {
	t := tempTenths(temp)
	if t == *lastTenths {
		return
	}

	text := "N/A"
	if temp >= 0 {
		text = fmt.Sprintf("%.0fC", temp)
	}
	e.disp.DrawTextRight(ScreenWidth-padding, y, text, tempTextPad, White, Black)
	*lastTenths = t
}

// DrawStatus fully repaints the status line: a colored receive indicator
// and the Bluetooth availability note. No delta caching here; it runs on a
// fixed cadence regardless of data changes.
func (e *Engine) DrawStatus(status freshness.Status, bluetoothAvailable bool) {
	d := e.disp
	d.FillRect(padding, yStatus-4, ScreenWidth-2*padding, 28, Black)

	var dot Color
	var text string
	switch status {
	case freshness.Fresh:
		dot, text = Green, "RX: fresh"
	case freshness.Stale:
		dot, text = Red, "RX: stale"
	default:
		dot, text = DarkGrey, "Waiting for data..."
	}
	d.FillCircle(padding+6, yStatus+6, 5, dot)
	d.DrawText(padding+18, yStatus, text, White, Black)

	bt := "BT: unavailable"
	if bluetoothAvailable {
		bt = "BT: available"
	}
	d.DrawText(ScreenWidth-88, yStatus, bt, Yellow, Black)
}

// Blank clears the panel and cuts backlight power.
func (e *Engine) Blank() {
	e.disp.FillScreen(Black)
	e.disp.SetBacklight(false)
}

// Wake re-enables backlight power. The caller follows up with Layout and a
// full repaint.
func (e *Engine) Wake() {
	e.disp.SetBacklight(true)
}

func loadText(v float64) string {
	if v < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", v)
}

func tempTenths(v float64) int {
	if v < 0 {
		return -1
	}
	return int(v * 10)
}

func roundedLoad(v float64) int {
	if v < 0 {
		return -1
	}
	return int(v + 0.5)
}
