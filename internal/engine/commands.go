package engine

import (
	"encoding/json"

	"github.com/inkbrush/inkbrush/backend-go/internal/brush"
	"github.com/inkbrush/inkbrush/backend-go/internal/document"
)

// Composite modes for draw commands. Eraser strokes subtract coverage.
const (
	CompositePaint = "source-over"
	CompositeErase = "destination-out"
)

// DrawCommand represents a single fill operation for the frontend to
// execute on a Canvas2D context: a smooth closed path plus fill color and
// composite mode. Commands are in painter's order (oldest stroke first).
type DrawCommand struct {
	Op        string `json:"op"`                 // currently always "fill"
	StrokeID  string `json:"strokeId,omitempty"` // empty for the live stroke
	Path      string `json:"path"`               // SVG path data ("M .. Q .. Z")
	Fill      string `json:"fill"`
	Composite string `json:"composite"`
}

// liveStroke is the in-progress stroke, rendered from already-resolved
// points so no re-resolution happens on every frame.
type liveStroke struct {
	points  []brush.StrokePoint
	options brush.Options
	color   string
}

// CompileDrawCommands generates a draw command buffer for a board document
// plus an optional in-progress stroke. Degenerate strokes compile to
// nothing: an empty outline means "draw nothing", never an error.
func CompileDrawCommands(doc *document.BoardDocument, live *liveStroke) []DrawCommand {
	if doc == nil {
		return nil
	}

	var commands []DrawCommand
	for _, stroke := range doc.Strokes {
		if cmd, ok := compileStroke(stroke); ok {
			commands = append(commands, cmd)
		}
	}

	if live != nil {
		path := brush.SerializeOutline(brush.BuildOutline(live.points, live.options))
		if !path.IsEmpty() {
			commands = append(commands, DrawCommand{
				Op:        "fill",
				Path:      path.SVGData(),
				Fill:      live.color,
				Composite: compositeFor(live.color),
			})
		}
	}

	return commands
}

func compileStroke(stroke document.Stroke) (DrawCommand, bool) {
	path := stroke.Path()
	if path.IsEmpty() {
		return DrawCommand{}, false
	}
	return DrawCommand{
		Op:        "fill",
		StrokeID:  stroke.ID,
		Path:      path.SVGData(),
		Fill:      stroke.Color,
		Composite: compositeFor(stroke.Color),
	}, true
}

func compositeFor(color string) string {
	if color == document.EraserColor {
		return CompositeErase
	}
	return CompositePaint
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if len(commands) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
