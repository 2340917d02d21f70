package api

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/banshee-data/pose.fusion/internal/testutil"
)

func TestShowPoseChart(t *testing.T) {
	server, database, _ := newTestServer(t)
	seedPoses(t, database, 10)

	rec := testutil.NewTestRecorder()
	server.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/charts/pose?limit=5"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "echarts") {
		t.Error("expected rendered chart markup in response")
	}
}

func TestShowPoseChartNoData(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := testutil.NewTestRecorder()
	server.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/charts/pose"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}

func TestShowTrajectoryPlot(t *testing.T) {
	server, database, _ := newTestServer(t)
	seedPoses(t, database, 10)

	rec := testutil.NewTestRecorder()
	server.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/plot/trajectory.png"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(rec.Body.Bytes(), pngMagic) {
		t.Error("expected PNG payload")
	}
}

func TestShowTrajectoryPlotNoData(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := testutil.NewTestRecorder()
	server.ServeMux().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/plot/trajectory.png"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}
