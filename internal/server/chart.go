package server

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"AntarcticExplorer/internal/model"
)

var (
	readingColor = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	trendColor   = color.RGBA{R: 220, G: 38, B: 38, A: 255}
)

// renderChart draws the window's readings and, when present, the fitted trend line as PNG.
func renderChart(v *model.DerivedView, w io.Writer) error {
	p := plot.New()
	p.Title.Text = "Temperature Trend"
	p.Y.Label.Text = "Temperature (°C)"

	readings := make(plotter.XYs, len(v.Rows))
	labels := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		readings[i].X = float64(i)
		readings[i].Y = r.Value
		labels[i] = r.Timestamp
	}

	scatter, err := plotter.NewScatter(readings)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = readingColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)
	p.Legend.Add("reading", scatter)

	if v.HasTrend() {
		fitted := make(plotter.XYs, len(v.Fitted))
		for i, y := range v.Fitted {
			fitted[i].X = float64(i)
			fitted[i].Y = y
		}
		line, err := plotter.NewLine(fitted)
		if err != nil {
			return fmt.Errorf("build trend line: %w", err)
		}
		line.Color = trendColor
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add("trend", line)
	}

	p.NominalX(labels...)
	p.Legend.Top = true

	wt, err := p.WriterTo(8*vg.Inch, 3*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	v := s.current(w)
	if v == nil {
		return
	}
	var buf bytes.Buffer
	if err := renderChart(v, &buf); err != nil {
		s.logger.Error("chart_render_failed", "tick", v.Tick, "error", err)
		http.Error(w, "chart unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
