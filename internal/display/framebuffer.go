package display

import "github.com/mohsinyousufi/wio-pc-monitor/internal/render"

// TextOp records one string drawn to the framebuffer. Glyph rasterization
// belongs to a panel driver; the framebuffer keeps the text as data.
type TextOp struct {
	Text  string
	X, Y  int
	Fg    render.Color
	Bg    render.Color
	Right bool
}

// Framebuffer is an in-memory render.Display. It stands in when no panel
// driver is linked and doubles as the observable surface for tests: full
// pixel state, painted-pixel accounting and an operation counter.
type Framebuffer struct {
	w, h int
	pix  []render.Color

	Backlight     bool
	Ops           int
	PaintedPixels int
	Texts         []TextOp
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		w:         w,
		h:         h,
		pix:       make([]render.Color, w*h),
		Backlight: true,
	}
}

// At returns the pixel at (x, y), or black out of bounds.
func (f *Framebuffer) At(x, y int) render.Color {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return render.Black
	}
	return f.pix[y*f.w+x]
}

func (f *Framebuffer) FillScreen(c render.Color) {
	f.FillRect(0, 0, f.w, f.h, c)
}

func (f *Framebuffer) FillRect(x, y, w, h int, c render.Color) {
	f.Ops++
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := x+dx, y+dy
			if px < 0 || py < 0 || px >= f.w || py >= f.h {
				continue
			}
			f.pix[py*f.w+px] = c
			f.PaintedPixels++
		}
	}
}

func (f *Framebuffer) FillCircle(x, y, r int, c render.Color) {
	f.Ops++
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			px, py := x+dx, y+dy
			if px < 0 || py < 0 || px >= f.w || py >= f.h {
				continue
			}
			f.pix[py*f.w+px] = c
			f.PaintedPixels++
		}
	}
}

func (f *Framebuffer) DrawHLine(x, y, w int, c render.Color) {
	f.FillRect(x, y, w, 1, c)
}

func (f *Framebuffer) DrawText(x, y int, s string, fg, bg render.Color) {
	f.Ops++
	f.Texts = append(f.Texts, TextOp{Text: s, X: x, Y: y, Fg: fg, Bg: bg})
}

func (f *Framebuffer) DrawTextRight(x, y int, s string, _ int, fg, bg render.Color) {
	f.Ops++
	f.Texts = append(f.Texts, TextOp{Text: s, X: x, Y: y, Fg: fg, Bg: bg, Right: true})
}

func (f *Framebuffer) SetBacklight(on bool) {
	f.Backlight = on
}

// ResetCounters zeroes the observation counters without touching pixels.
func (f *Framebuffer) ResetCounters() {
	f.Ops = 0
	f.PaintedPixels = 0
	f.Texts = nil
}
