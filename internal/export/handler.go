package export

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
)

const maxDocumentSize = 16 << 20 // 16MB

// Handler serves board exports.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportSVG handles POST /export/svg. The request body is a full board
// document; the response is the rendered SVG as a download.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)

	var doc document.BoardDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid board document", http.StatusBadRequest)
		return
	}

	name := doc.Board.Name
	if name == "" {
		name = "board"
	}
	// Sanitize filename
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	svg := RenderSVG(&doc)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.svg"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}
