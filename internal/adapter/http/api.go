package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/overlay"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/twpayne/go-geom/encoding/geojson"
)

type overlayView struct {
	Name    string                     `json:"name"`
	Visible bool                       `json:"visible"`
	Data    *geojson.FeatureCollection `json:"data"`
}

type renderResponse struct {
	BaseMap    overlay.BaseMap      `json:"base_map"`
	Overlays   []overlayView        `json:"overlays"`
	Legend     []domain.LegendEntry `json:"legend"`
	Skipped    int                  `json:"skipped"`
	RenderedAt time.Time            `json:"rendered_at"`
}

type lookupResponse struct {
	Feature  domain.EarthquakeFeature `json:"feature"`
	Category domain.Category          `json:"category"`
	Color    string                   `json:"color"`
}

func newRenderResponse(m *overlay.Map) renderResponse {
	resp := renderResponse{
		BaseMap:    m.Base,
		Legend:     domain.Legend(),
		Skipped:    m.Skipped,
		RenderedAt: m.RenderedAt,
	}
	for _, l := range m.Layers() {
		resp.Overlays = append(resp.Overlays, overlayView{
			Name:    l.Name,
			Visible: l.Visible,
			Data:    l.FeatureCollection(),
		})
	}
	return resp
}

// handleRender runs a render pass. Repeated ?hidden=<layer name> parameters
// start those overlays switched off.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	hidden := r.URL.Query()["hidden"]

	m, err := s.renderer.Render(r.Context())
	if err != nil {
		s.logger.Warn("render pass aborted", "error", err)
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	for _, name := range hidden {
		if err := m.SetVisible(name, false); err != nil {
			sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	sharedobs.WriteJSON(w, http.StatusOK, newRenderResponse(m))
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, domain.Legend())
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	eq, err := s.renderer.Lookup(r.Context(), id)
	var mf *domain.MalformedFeatureError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"status": "not found", "id": id})
		return
	case errors.As(err, &mf):
		s.logger.Warn("lookup matched a malformed feature", "id", id, "error", err)
		sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"status": "malformed",
			"id":     id,
			"error":  mf.Reason,
		})
		return
	case err != nil:
		s.logger.Warn("lookup failed", "id", id, "error", err)
		sharedobs.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	cat := domain.ClassifyDepth(eq.Position.Depth)
	sharedobs.WriteJSON(w, http.StatusOK, lookupResponse{Feature: eq, Category: cat, Color: cat.Color()})
}
