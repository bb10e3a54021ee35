package web

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/FlightLedger/FL-Backend/internal/logger"
)

// Renderer holds the parsed page templates. Pages are plain data-in,
// HTML-out; handlers own all store access.
type Renderer struct {
	templates *template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (rd *Renderer) Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.L.Error().Err(err).Str("template", name).Msg("render failed")
	}
}
