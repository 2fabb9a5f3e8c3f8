package render

// Color is an RGB565 panel color.
type Color uint16

const (
	Black    Color = 0x0000
	White    Color = 0xFFFF
	DarkGrey Color = 0x7BEF
	Green    Color = 0x07E0
	Cyan     Color = 0x07FF
	Orange   Color = 0xFDA0
	Red      Color = 0xF800
	Yellow   Color = 0xFFE0
)

// Display is the drawing capability the engine requires from a panel
// driver. Pixel and glyph rendering live behind it; the engine only decides
// what to repaint and when.
type Display interface {
	FillScreen(c Color)
	FillRect(x, y, w, h int, c Color)
	FillCircle(x, y, r int, c Color)
	DrawHLine(x, y, w int, c Color)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(x, y int, s string, fg, bg Color)
	// DrawTextRight draws s right-aligned at x and vertically centered on
	// y, first erasing pad pixels leftward of x so a shorter string clears
	// the previous, longer one.
	DrawTextRight(x, y int, s string, pad int, fg, bg Color)
	SetBacklight(on bool)
}
