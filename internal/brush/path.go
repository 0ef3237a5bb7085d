package brush

import (
	"strconv"
	"strings"
)

// Segment is a quadratic curve primitive: from the current position, curve
// through Control and end at Anchor.
type Segment struct {
	Control Point `json:"control"`
	Anchor  Point `json:"anchor"`
}

// Path is a smooth closed curve description of a stroke outline, suitable
// for filling.
type Path struct {
	Start    Point     `json:"start"`
	Segments []Segment `json:"segments"`
	Closed   bool      `json:"closed"`
}

// IsEmpty reports whether the path draws nothing.
func (p Path) IsEmpty() bool {
	return !p.Closed
}

// SerializeOutline turns a closed polygon into a smooth closed curve by
// rounding every vertex with the midpoint trick: each polygon vertex becomes
// the control point of a quadratic whose anchor is the midpoint to the next
// vertex. The rounding radius at each vertex is therefore half the local
// edge length. An outline of length L yields L-1 segments plus the implicit
// close back to the start; an empty outline yields the empty path.
func SerializeOutline(outline []Point) Path {
	if len(outline) == 0 {
		return Path{}
	}

	segments := make([]Segment, 0, len(outline)-1)
	for i := 1; i < len(outline); i++ {
		p1 := outline[i]
		p2 := outline[(i+1)%len(outline)]
		segments = append(segments, Segment{Control: p1, Anchor: p1.Midpoint(p2)})
	}

	return Path{Start: outline[0], Segments: segments, Closed: true}
}

// SVGData renders the path as SVG path data ("M ... Q ... Z"), the format
// both the canvas draw commands and the SVG exporter consume.
func (p Path) SVGData() string {
	if p.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("M")
	writeCoord(&b, p.Start)
	for _, s := range p.Segments {
		b.WriteString(" Q")
		writeCoord(&b, s.Control)
		writeCoord(&b, s.Anchor)
	}
	b.WriteString(" Z")
	return b.String()
}

func writeCoord(b *strings.Builder, p Point) {
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.X, 'f', 2, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', 2, 64))
}
