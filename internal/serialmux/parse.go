package serialmux

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/banshee-data/pose.fusion/internal/fusion"
)

const (
	EventTypeRateReport = "rate_report"
	EventTypeConfig     = "config"
	EventTypeUnknown    = "unknown"
)

// ClassifyLine inspects a line from the filter device and returns a simple
// event type token. The classification is intentionally conservative: only
// lines that carry a gyro reading are treated as rate reports.
func ClassifyLine(line string) string {
	if strings.Contains(line, "gyro_z") {
		return EventTypeRateReport
	}
	if strings.HasPrefix(line, "{") {
		return EventTypeConfig
	}
	return EventTypeUnknown
}

// rateLine is the JSON report the filter device emits once per reading.
type rateLine struct {
	GyroZ      *float64  `json:"gyro_z"`
	StampNs    int64     `json:"stamp_ns"`
	Covariance []float64 `json:"covariance"`
}

// ParseRateLine decodes a rate report into a sample for the backup filter
// stream. A missing device timestamp is stamped with the local clock.
func ParseRateLine(line string) (fusion.Sample, error) {
	var raw rateLine
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return fusion.Sample{}, fmt.Errorf("invalid rate report: %w", err)
	}
	if raw.GyroZ == nil {
		return fusion.Sample{}, fmt.Errorf("rate report missing gyro_z")
	}

	twist := fusion.TwistSample{AngularZ: *raw.GyroZ}

	switch len(raw.Covariance) {
	case 0:
		// Device omits covariance until its filter converges; zeros are fine.
	case fusion.CovarianceSize:
		copy(twist.Covariance[:], raw.Covariance)
	default:
		return fusion.Sample{}, fmt.Errorf("rate report covariance has %d entries, want %d",
			len(raw.Covariance), fusion.CovarianceSize)
	}

	if raw.StampNs > 0 {
		twist.Stamp = time.Unix(0, raw.StampNs)
	} else {
		twist.Stamp = time.Now()
	}

	return fusion.Sample{
		Role:  fusion.RoleFilterTwist,
		Twist: &twist,
	}, nil
}
