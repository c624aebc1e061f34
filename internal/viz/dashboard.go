package viz

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// handleDashboard renders a quick top-down scatter (HTML) of the agent's
// neighbourhood using go-echarts. The agent sits at the origin; neighbour
// markers are coloured by distance and the composite steering force is drawn
// as a second series scaled into view.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	res, ready := s.latest, s.ready
	s.mu.Unlock()

	if !ready {
		s.writeJSONError(w, http.StatusNotFound, "no step results published yet")
		return
	}

	data := make([]opts.ScatterData, 0, len(res.Neighbors))
	maxAbs := 0.5
	for _, n := range res.Neighbors {
		if math.Abs(n.Offset.X) > maxAbs {
			maxAbs = math.Abs(n.Offset.X)
		}
		if math.Abs(n.Offset.Y) > maxAbs {
			maxAbs = math.Abs(n.Offset.Y)
		}
		data = append(data, opts.ScatterData{Value: []interface{}{n.Offset.X, n.Offset.Y, n.Distance}})
	}

	// Symmetric axes keep the agent centred and bearings undistorted.
	pad := maxAbs * 1.1

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Swarm Agent View", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Agent Neighbourhood", Subtitle: fmt.Sprintf("agent=%s step=%d neighbors=%d", s.agent, res.Step, len(res.Neighbors))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        2.0,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#fde725", "#35b779", "#31688e", "#440154"}},
		}),
	)

	scatter.AddSeries("neighbors", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	// Scale the composite force so it stays in frame regardless of weights.
	forceScale := pad / math.Max(res.Force.Mag(), 1e-6)
	if forceScale > 1 {
		forceScale = 1
	}
	forcePoint := []opts.ScatterData{
		{Value: []interface{}{0.0, 0.0, 0.0}},
		{Value: []interface{}{res.Force.X * forceScale, res.Force.Y * forceScale, 0.0}},
	}
	scatter.AddSeries("force", forcePoint, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
