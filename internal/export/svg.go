package export

import (
	"bytes"
	"fmt"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
)

// RenderSVG renders a board document as a standalone SVG image: one filled
// path per stroke, in painter's order.
//
// SVG has no destination-out compositing for plain paths, so eraser strokes
// are painted in the board background color. That matches the canvas result
// exactly as long as the background is a solid fill.
func RenderSVG(doc *document.BoardDocument) []byte {
	width := doc.Board.Width
	if width <= 0 {
		width = 1280
	}
	height := doc.Board.Height
	if height <= 0 {
		height = 720
	}
	background := doc.Board.Background
	if background == "" {
		background = "#ffffff"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	b.WriteByte('\n')
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`, background)
	b.WriteByte('\n')

	for _, stroke := range doc.Strokes {
		path := stroke.Path()
		if path.IsEmpty() {
			continue
		}

		fill := stroke.Color
		if stroke.IsEraser() {
			fill = background
		}
		fmt.Fprintf(&b, `  <path d="%s" fill="%s"/>`, path.SVGData(), fill)
		b.WriteByte('\n')
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}
