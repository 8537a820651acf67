package server

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"AntarcticExplorer/internal/model"
	"AntarcticExplorer/internal/view"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type link struct {
	Label string
	Href  string
}

var sidebarLinks = []link{
	{"GitHub Source", "https://github.com/dgraves4/cintel-05-cintel"},
	{"GitHub App", "https://dgraves4.github.io/cintel-05-cintel/"},
	{"PyShiny", "https://shiny.posit.co/py/"},
	{"PyShiny Express", "https://shiny.posit.co/blog/posts/shiny-express/"},
	{"Prometheus metrics", "/metrics"},
	{"JSON view", "/api/view"},
}

// Map centre over the Antarctic plateau.
const (
	mapLat  = -77.85
	mapLon  = 166.67
	mapSpan = 20.0
)

type pageData struct {
	Title          string
	RefreshSeconds int
	Ready          bool
	Display        string
	Timestamp      string
	Caption        string
	Updated        string
	Tick           uint64
	Rows           []model.Sample
	Trend          *model.Trend
	Stats          model.WindowStats
	Links          []link
	MapLat         float64
	MapLon         float64
	MapEmbedURL    template.URL
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:          s.cfg.Title,
		RefreshSeconds: refreshSeconds(s.cfg.Interval),
		Caption:        "collecting readings",
		Links:          sidebarLinks,
		MapLat:         mapLat,
		MapLon:         mapLon,
		MapEmbedURL:    mapEmbedURL(mapLat, mapLon, mapSpan),
	}
	if v := s.cfg.Cell.Load(); v != nil && v.Latest != nil {
		data.Ready = true
		data.Display = view.DisplayValue(v.Latest.Value)
		data.Timestamp = v.Latest.Timestamp
		data.Caption = view.Caption(v)
		data.Updated = humanize.Time(v.BuiltAt)
		data.Tick = v.Tick
		data.Rows = v.Rows
		data.Trend = v.Trend
		data.Stats = v.Stats
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("render_index_failed", "error", err)
	}
}

// refreshSeconds rounds the tick interval up to whole seconds for the page refresh.
func refreshSeconds(d time.Duration) int {
	n := int(math.Ceil(d.Seconds()))
	if n < 1 {
		return 1
	}
	return n
}

func mapEmbedURL(lat, lon, span float64) template.URL {
	minLat, maxLat := math.Max(lat-span/2, -90), math.Min(lat+span/2, 90)
	minLon, maxLon := math.Max(lon-span, -180), math.Min(lon+span, 180)
	return template.URL(fmt.Sprintf(
		"https://www.openstreetmap.org/export/embed.html?bbox=%.2f%%2C%.2f%%2C%.2f%%2C%.2f&layer=mapnik&marker=%.2f%%2C%.2f",
		minLon, minLat, maxLon, maxLat, lat, lon))
}
