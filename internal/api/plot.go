package api

import (
	"image/color"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/pose.fusion/internal/httputil"
)

// showTrajectoryPlot renders the recent fused X/Y trajectory as a PNG
// using gonum/plot. Points are drawn oldest to newest so the line traces
// the path of the platform.
// Query params:
//   - limit (optional; default 100, max 1000)
func (s *Server) showTrajectoryPlot(w http.ResponseWriter, r *http.Request) {
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

	pts := make(plotter.XYs, len(poses))
	for i := len(poses) - 1; i >= 0; i-- {
		j := len(poses) - 1 - i
		pts[j] = plotter.XY{X: poses[i].X, Y: poses[i].Y}
	}

	p := plot.New()
	p.Title.Text = "Fused Trajectory"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		httputil.InternalServerError(w, "Failed to build plot")
		return
	}
	line.Color = color.RGBA{R: 31, G: 158, B: 137, A: 255}
	p.Add(line)

	scatter, err := plotter.NewScatter(pts[len(pts)-1:])
	if err == nil {
		// Mark the most recent position.
		scatter.GlyphStyle.Color = color.RGBA{R: 253, G: 231, B: 37, A: 255}
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
	}

	writer, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		httputil.InternalServerError(w, "Failed to render plot")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := writer.WriteTo(w); err != nil {
		// Headers already sent; nothing useful left to do.
		return
	}
}
