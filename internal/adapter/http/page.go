package http

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

type pageData struct {
	Legend []domain.LegendEntry
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Legend: domain.Legend()}); err != nil {
		s.logger.Error("render map page failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
