// Package api serves the HTTP surface of the fusion service: status,
// recent fused output, charts, and trajectory plots.
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/pose.fusion/internal/db"
	"github.com/banshee-data/pose.fusion/internal/fusion"
	"github.com/banshee-data/pose.fusion/internal/httputil"
	"github.com/banshee-data/pose.fusion/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

const defaultLimit = 100
const maxLimit = 1000

// StreamStats exposes the gRPC publisher counters to the status
// endpoint without coupling this package to the stream internals.
type StreamStats interface {
	ClientCount() int32
	UpdateCount() uint64
	DroppedUpdates() uint64
}

// RecorderStats exposes the storage worker counters.
type RecorderStats interface {
	Written() uint64
	Dropped() uint64
}

type Server struct {
	controller *fusion.Controller
	db         *db.DB
	sessionID  string
	weights    fusion.Weights

	// Optional stat providers; nil means the subsystem is disabled.
	stream   StreamStats
	recorder RecorderStats
}

func NewServer(controller *fusion.Controller, database *db.DB, sessionID string, weights fusion.Weights) *Server {
	return &Server{
		controller: controller,
		db:         database,
		sessionID:  sessionID,
		weights:    weights,
	}
}

// SetStreamStats attaches the gRPC publisher stats provider.
func (s *Server) SetStreamStats(stats StreamStats) {
	s.stream = stats
}

// SetRecorderStats attaches the storage worker stats provider.
func (s *Server) SetRecorderStats(stats RecorderStats) {
	s.recorder = stats
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.showStatus)
	mux.HandleFunc("/api/session", s.showSession)
	mux.HandleFunc("/api/poses", s.listPoses)
	mux.HandleFunc("/api/twists", s.listTwists)
	mux.HandleFunc("/api/transforms", s.listTransforms)
	mux.HandleFunc("/charts/pose", s.showPoseChart)
	mux.HandleFunc("/plot/trajectory.png", s.showTrajectoryPlot)
	return mux
}

// parseLimit reads the 'limit' query parameter, clamped to maxLimit.
// Returns -1 and writes an error response when the parameter is invalid.
func (s *Server) parseLimit(w http.ResponseWriter, r *http.Request) int {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			httputil.BadRequest(w, "Invalid 'limit' parameter")
			return -1
		}
		limit = parsed
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

type roleStatus struct {
	Samples     int64     `json:"samples"`
	LastArrival time.Time `json:"last_arrival,omitzero"`
	LastStamp   time.Time `json:"last_stamp,omitzero"`
}

type weightsStatus struct {
	LidarPose   float64 `json:"lidar_pose"`
	GNSSPose    float64 `json:"gnss_pose"`
	EKFTwist    float64 `json:"ekf_twist"`
	FilterTwist float64 `json:"filter_twist"`
}

type statusResponse struct {
	Version     string                `json:"version"`
	SessionID   string                `json:"session_id"`
	UptimeS     float64               `json:"uptime_s"`
	Weights     weightsStatus         `json:"weights"`
	Roles       map[string]roleStatus `json:"roles"`
	FusedPoses  int64                 `json:"fused_poses"`
	FusedTwists int64                 `json:"fused_twists"`
	Stream      *streamStatus         `json:"stream,omitempty"`
	Storage     *storageStatus        `json:"storage,omitempty"`
}

type streamStatus struct {
	Clients int32  `json:"clients"`
	Updates uint64 `json:"updates"`
	Dropped uint64 `json:"dropped"`
}

type storageStatus struct {
	Written uint64 `json:"written"`
	Dropped uint64 `json:"dropped"`
}

func (s *Server) showStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	snap := s.controller.Stats().Snapshot()

	roles := make(map[string]roleStatus, len(fusion.Roles))
	for _, role := range fusion.Roles {
		roles[string(role)] = roleStatus{
			Samples:     snap.Samples[role],
			LastArrival: snap.LastArrival[role],
			LastStamp:   snap.LastStamp[role],
		}
	}

	resp := statusResponse{
		Version:   version.Version,
		SessionID: s.sessionID,
		UptimeS:   snap.CapturedAt.Sub(snap.StartedAt).Seconds(),
		Weights: weightsStatus{
			LidarPose:   s.weights.LidarPose,
			GNSSPose:    s.weights.GNSSPose,
			EKFTwist:    s.weights.EKFTwist,
			FilterTwist: s.weights.FilterTwist,
		},
		Roles:       roles,
		FusedPoses:  snap.FusedPoses,
		FusedTwists: snap.FusedTwists,
	}
	if s.stream != nil {
		resp.Stream = &streamStatus{
			Clients: s.stream.ClientCount(),
			Updates: s.stream.UpdateCount(),
			Dropped: s.stream.DroppedUpdates(),
		}
	}
	if s.recorder != nil {
		resp.Storage = &storageStatus{
			Written: s.recorder.Written(),
			Dropped: s.recorder.Dropped(),
		}
	}

	httputil.WriteJSONOK(w, resp)
}

func (s *Server) showSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	session, err := s.db.GetSession(s.sessionID)
	if err != nil {
		httputil.InternalServerError(w, "Failed to load session")
		return
	}
	httputil.WriteJSONOK(w, session)
}

func (s *Server) listPoses(w http.ResponseWriter, r *http.Request) {
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
	if poses == nil {
		poses = []db.FusedPoseRow{}
	}
	httputil.WriteJSONOK(w, poses)
}

func (s *Server) listTwists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	limit := s.parseLimit(w, r)
	if limit < 0 {
		return
	}

	twists, err := s.db.RecentFusedTwists(s.sessionID, limit)
	if err != nil {
		httputil.InternalServerError(w, "Failed to query twists")
		return
	}
	if twists == nil {
		twists = []db.FusedTwistRow{}
	}
	httputil.WriteJSONOK(w, twists)
}

func (s *Server) listTransforms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	limit := s.parseLimit(w, r)
	if limit < 0 {
		return
	}

	transforms, err := s.db.RecentTransforms(s.sessionID, limit)
	if err != nil {
		httputil.InternalServerError(w, "Failed to query transforms")
		return
	}
	if transforms == nil {
		transforms = []db.TransformRow{}
	}
	httputil.WriteJSONOK(w, transforms)
}
