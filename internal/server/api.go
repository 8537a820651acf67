package server

import (
	"encoding/json"
	"net/http"

	"AntarcticExplorer/internal/model"
	"AntarcticExplorer/internal/view"
)

type latestResponse struct {
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	Timestamp string  `json:"timestamp"`
	Caption   string  `json:"caption"`
}

type viewResponse struct {
	Rows   []model.Sample    `json:"rows"`
	Latest *model.Sample     `json:"latest"`
	Trend  *model.Trend      `json:"trend"`
	Chart  []view.ChartPoint `json:"chart"`
	Stats  model.WindowStats `json:"stats"`
	Tick   uint64            `json:"tick"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// current returns the latest view or writes 503 when nothing is published yet.
func (s *Server) current(w http.ResponseWriter) *model.DerivedView {
	v := s.cfg.Cell.Load()
	if v == nil || v.Latest == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no readings yet"})
		return nil
	}
	return v
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	v := s.current(w)
	if v == nil {
		return
	}
	writeJSON(w, http.StatusOK, latestResponse{
		Value:     v.Latest.Value,
		Display:   view.DisplayValue(v.Latest.Value),
		Timestamp: v.Latest.Timestamp,
		Caption:   view.Caption(v),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	v := s.current(w)
	if v == nil {
		return
	}
	writeJSON(w, http.StatusOK, v.Rows)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v := s.current(w)
	if v == nil {
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{
		Rows:   v.Rows,
		Latest: v.Latest,
		Trend:  v.Trend,
		Chart:  view.ChartSeries(v),
		Stats:  v.Stats,
		Tick:   v.Tick,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Session.Summary())
}
