package debugdraw

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextFace is the bitmap face used for debug text.
var TextFace font.Face = basicfont.Face7x13

// Sprintf formats debug text. A format with no arguments is used verbatim so
// strings containing '%' need no escaping.
func Sprintf(format string, args ...any) string {
	return formatText(format, args)
}

func formatText(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// TextSize returns the pixel size of the box RasterizeText would produce.
func TextSize(s string) image.Point {
	m := TextFace.Metrics()
	lineHeight := m.Height.Ceil()
	lines := strings.Split(s, "\n")
	w := 0
	for _, l := range lines {
		if adv := font.MeasureString(TextFace, l).Ceil(); adv > w {
			w = adv
		}
	}
	return image.Pt(w, lineHeight*len(lines))
}

// RasterizeText renders s into a coverage mask whose origin is the top-left
// of the first line. Newlines start a new line. It returns nil for an empty
// string.
func RasterizeText(s string) *image.Alpha {
	size := TextSize(s)
	if size.X == 0 || size.Y == 0 {
		return nil
	}
	dst := image.NewAlpha(image.Rectangle{Max: size})
	m := TextFace.Metrics()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: TextFace,
	}
	for i, l := range strings.Split(s, "\n") {
		d.Dot = fixed.Point26_6{
			X: 0,
			Y: m.Ascent + fixed.I(i*m.Height.Ceil()),
		}
		d.DrawString(l)
	}
	return dst
}
