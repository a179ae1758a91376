package metrics

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemProvider reads CPU, RAM, disk and uptime through gopsutil, and the
// active window and input activity through the X server. Every metric is
// collected best-effort: a reading that cannot be taken stays nil instead of
// failing the whole snapshot. Safe for concurrent snapshots.
type SystemProvider struct {
	input *inputCounter

	mu      sync.Mutex
	windows *x11Client
}

// NewSystemProvider creates a provider. The X connection for window titles is
// opened lazily on first use, so headless environments still get a provider
// that reports system metrics.
func NewSystemProvider(inputPollInterval time.Duration) *SystemProvider {
	return &SystemProvider{
		input: newInputCounter(inputPollInterval),
	}
}

func (p *SystemProvider) Snapshot() (Reading, error) {
	r := Reading{RecordedAt: time.Now()}

	// Interval 0 measures against the previous call instead of blocking.
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		v := round2(pct[0])
		r.CpuLoad = &v
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		used := round2(bytesToMB(vm.Used))
		total := round2(bytesToMB(vm.Total))
		r.RamUsedMb = &used
		r.RamTotalMb = &total
	}

	p.collectDisk(&r)

	if uptime, err := host.Uptime(); err == nil {
		r.SystemUptimeSeconds = int64(uptime)
	}

	r.ActiveWindow = p.activeWindowTitle()

	keys, clicks, moves := p.input.Stats()
	r.KeyPresses = keys
	r.MouseClicks = clicks
	r.MouseMoves = moves

	return r, nil
}

func (p *SystemProvider) collectDisk(r *Reading) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return
	}

	var totalGb, freeGb float64
	var detail strings.Builder
	found := false

	for _, part := range partitions {
		usage, err := disk.Usage(part.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}

		tGb := bytesToGB(usage.Total)
		fGb := bytesToGB(usage.Free)
		totalGb += tGb
		freeGb += fGb
		found = true

		fmt.Fprintf(&detail, "%s: %.2f / %.2f GB | ", part.Mountpoint, tGb-fGb, tGb)
	}

	if !found {
		return
	}

	total := round2(totalGb)
	free := round2(freeGb)
	used := round2(totalGb - freeGb)
	r.DiskTotalGb = &total
	r.DiskFreeGb = &free
	r.DiskUsedGb = &used
	r.DiskDetail = detail.String()
}

// activeWindowTitle returns the focused window's title, or "" when there is
// no X session or no focused window. The mutex covers the lazy connection:
// snapshots arrive concurrently from both tick loops and web handlers, and
// only one X connection may ever be opened.
func (p *SystemProvider) activeWindowTitle() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.windows == nil {
		client, err := newX11Client()
		if err != nil {
			return ""
		}
		p.windows = client
	}

	title, err := p.windows.ActiveWindowTitle()
	if err != nil {
		return ""
	}
	return title
}

func (p *SystemProvider) StartInputMonitoring() {
	p.input.Start()
}

func (p *SystemProvider) StopInputMonitoring() {
	p.input.Stop()
}

func (p *SystemProvider) Close() error {
	p.input.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.windows != nil {
		p.windows.Close()
		p.windows = nil
	}
	return nil
}

// Converts bytes to gigabytes
func bytesToGB(bytes uint64) float64 {
	return float64(bytes) / (1024 * 1024 * 1024)
}

// Converts bytes to megabytes
func bytesToMB(bytes uint64) float64 {
	return float64(bytes) / (1024 * 1024)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
