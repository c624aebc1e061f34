package viz

import (
	"fmt"
	"image/color"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// handleForcePlot renders the recent force magnitude and wheel speed history
// as a PNG line plot.
func (s *Server) handleForcePlot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	steps := append([]float64(nil), s.forceSteps...)
	mags := append([]float64(nil), s.forceMags...)
	left := append([]float64(nil), s.leftSpeed...)
	right := append([]float64(nil), s.rightSpeed...)
	s.mu.Unlock()

	if len(steps) == 0 {
		s.writeJSONError(w, http.StatusNotFound, "no step results published yet")
		return
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Steering history: %s", s.agent)
	p.X.Label.Text = "step"
	p.Y.Label.Text = "force magnitude / wheel speed (rad/s)"

	forceLine, err := plotter.NewLine(xyPoints(steps, mags))
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build force series: %v", err))
		return
	}
	forceLine.Width = vg.Points(1)
	forceLine.Color = color.RGBA{R: 255, A: 255}

	leftLine, err := plotter.NewLine(xyPoints(steps, left))
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build left series: %v", err))
		return
	}
	leftLine.Width = vg.Points(1)
	leftLine.Color = color.RGBA{G: 180, A: 255}

	rightLine, err := plotter.NewLine(xyPoints(steps, right))
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build right series: %v", err))
		return
	}
	rightLine.Width = vg.Points(1)
	rightLine.Color = color.RGBA{B: 255, A: 255}

	p.Add(forceLine, leftLine, rightLine)
	p.Legend.Add("force", forceLine)
	p.Legend.Add("left wheel", leftLine)
	p.Legend.Add("right wheel", rightLine)
	p.Legend.Top = true

	wt, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render plot: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = wt.WriteTo(w)
}

func xyPoints(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
