package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/pose.fusion/internal/httputil"
)

// showPoseChart renders a quick line chart (HTML) of the recent fused
// position components using go-echarts. Debugging-only endpoint (no auth)
// for checking the blend without a frontend.
// Query params:
//   - limit (optional; default 100, max 1000)
func (s *Server) showPoseChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	limit := s.parseLimit(w, r)
	if limit < 0 {
		return
	}

	poses, err := s.db.RecentFusedPoses(s.sessionID, limit)
	if err != nil {
		httputil.InternalServerError(w, "Failed to query poses")
		return
	}
	if len(poses) == 0 {
		httputil.NotFound(w, "No fused poses recorded yet")
		return
	}

	// RecentFusedPoses returns newest first; plot oldest to newest.
	labels := make([]string, len(poses))
	xData := make([]opts.LineData, len(poses))
	yData := make([]opts.LineData, len(poses))
	zData := make([]opts.LineData, len(poses))
	for i := len(poses) - 1; i >= 0; i-- {
		j := len(poses) - 1 - i
		labels[j] = time.Unix(0, poses[i].StampNs).UTC().Format("15:04:05.000")
		xData[j] = opts.LineData{Value: poses[i].X}
		yData[j] = opts.LineData{Value: poses[i].Y}
		zData[j] = opts.LineData{Value: poses[i].Z}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Fused Position", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Fused Position", Subtitle: fmt.Sprintf("session=%s points=%d", s.sessionID, len(poses))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Stamp (UTC)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Position (m)"}),
	)

	line.SetXAxis(labels).
		AddSeries("x", xData).
		AddSeries("y", yData).
		AddSeries("z", zData)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		httputil.InternalServerError(w, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
