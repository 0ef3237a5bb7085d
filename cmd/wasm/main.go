//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
	"github.com/inkbrush/inkbrush/backend-go/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	inkbrushEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	inkbrushEngine.Set("loadDocument", js.FuncOf(loadDocument))
	inkbrushEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	inkbrushEngine.Set("pointerDown", js.FuncOf(pointerDown))
	inkbrushEngine.Set("pointerMove", js.FuncOf(pointerMove))
	inkbrushEngine.Set("pointerUp", js.FuncOf(pointerUp))
	inkbrushEngine.Set("addStroke", js.FuncOf(addStroke))
	inkbrushEngine.Set("undo", js.FuncOf(undo))
	inkbrushEngine.Set("redo", js.FuncOf(redo))
	inkbrushEngine.Set("clear", js.FuncOf(clear))
	inkbrushEngine.Set("setColor", js.FuncOf(setColor))
	inkbrushEngine.Set("setSize", js.FuncOf(setSize))
	inkbrushEngine.Set("setThinning", js.FuncOf(setThinning))
	inkbrushEngine.Set("setEraser", js.FuncOf(setEraser))

	// --- Queries (frontend ← backend) ---
	inkbrushEngine.Set("render", js.FuncOf(render))
	inkbrushEngine.Set("getDocument", js.FuncOf(getDocument))
	inkbrushEngine.Set("strokeCount", js.FuncOf(strokeCount))
	inkbrushEngine.Set("isDrawing", js.FuncOf(isDrawing))
	inkbrushEngine.Set("canUndo", js.FuncOf(canUndo))
	inkbrushEngine.Set("canRedo", js.FuncOf(canRedo))

	// Register on global scope
	js.Global().Set("inkbrushEngine", inkbrushEngine)

	// Signal that WASM is ready
	js.Global().Set("inkbrushWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.LoadDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	boardID := "board_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		boardID = args[0].String()
	}

	eng.LoadSampleDocument(boardID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// pointerDown(x, y, time[, pressure]); pressure omitted means the input
// device does not report it.
func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	x := args[0].Float()
	y := args[1].Float()
	t := args[2].Float()

	pressure, hasPressure := optionalPressure(args, 3)
	eng.PointerDown(x, y, pressure, hasPressure, t)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	x := args[0].Float()
	y := args[1].Float()
	t := args[2].Float()

	pressure, hasPressure := optionalPressure(args, 3)
	eng.PointerMove(x, y, pressure, hasPressure, t)
	return nil
}

// pointerUp finalizes the in-progress stroke and returns it as JSON so
// the frontend can submit it as a collaboration operation. Returns null
// when the stroke was too short to keep.
func pointerUp(this js.Value, args []js.Value) interface{} {
	stroke := eng.PointerUp()
	if stroke == nil {
		return js.Null()
	}

	data, err := json.Marshal(stroke)
	if err != nil {
		return js.Null()
	}
	return js.ValueOf(string(data))
}

// addStroke applies a remote stroke (received over the collaboration
// channel) to the local document.
func addStroke(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}

	var stroke document.Stroke
	if err := json.Unmarshal([]byte(args[0].String()), &stroke); err != nil {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.AddStroke(stroke))
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

func clear(this js.Value, args []js.Value) interface{} {
	eng.Clear()
	return nil
}

func setColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetColor(args[0].String())
	return nil
}

func setSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetSize(args[0].Float())
	return nil
}

func setThinning(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetThinning(args[0].Float())
	return nil
}

func setEraser(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetEraser(args[0].Bool())
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func strokeCount(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.StrokeCount())
}

func isDrawing(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.IsDrawing())
}

func canUndo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanUndo())
}

func canRedo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CanRedo())
}

func optionalPressure(args []js.Value, idx int) (float64, bool) {
	if len(args) <= idx {
		return 0, false
	}
	v := args[idx]
	if v.Type() != js.TypeNumber {
		return 0, false
	}
	return v.Float(), true
}
