package metrics

import (
	"time"
)

// Reading is one raw metrics sample, not yet attributed to a user. Metric
// fields are pointers so an unavailable reading stays distinguishable from
// zero load.
type Reading struct {
	RecordedAt time.Time

	CpuLoad    *float64
	RamUsedMb  *float64
	RamTotalMb *float64

	DiskTotalGb *float64
	DiskFreeGb  *float64
	DiskUsedGb  *float64
	DiskDetail  string

	ActiveWindow        string
	SystemUptimeSeconds int64

	KeyPresses  int64
	MouseClicks int64
	MouseMoves  int64
}

// Provider is the leaf metrics source: one call produces one reading, and
// input-activity counting can be toggled independently of sampling. Both
// toggles are idempotent.
type Provider interface {
	Snapshot() (Reading, error)

	StartInputMonitoring()
	StopInputMonitoring()

	Close() error
}
