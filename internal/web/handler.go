package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/config"
	"github.com/Maksim2301/System-activity-monitor/internal/export"
	"github.com/Maksim2301/System-activity-monitor/internal/idle"
	"github.com/Maksim2301/System-activity-monitor/internal/models"
	"github.com/Maksim2301/System-activity-monitor/internal/monitor"
	"github.com/Maksim2301/System-activity-monitor/internal/report"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// SnapshotFinder narrows the snapshot store to what the status surface reads.
type SnapshotFinder interface {
	GetLatest(userID uint) (*models.Snapshot, error)
}

// Handler exposes the monitoring core over a small JSON API. The user it
// serves is fixed at construction; authentication happens outside this
// module.
type Handler struct {
	config    *config.Config
	monitor   *monitor.Service
	idle      *idle.Service
	reports   *report.Service
	snapshots SnapshotFinder
	user      *models.User
}

func NewHandler(cfg *config.Config, mon *monitor.Service, idleSvc *idle.Service, reports *report.Service, snapshots SnapshotFinder, user *models.User) *Handler {
	return &Handler{
		config:    cfg,
		monitor:   mon,
		idle:      idleSvc,
		reports:   reports,
		snapshots: snapshots,
		user:      user,
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", h.handleStatus)
	mux.HandleFunc("/api/snapshot", h.handleSnapshot)
	mux.HandleFunc("/api/idle/start", h.handleIdleStart)
	mux.HandleFunc("/api/idle/end", h.handleIdleEnd)
	mux.HandleFunc("/api/reports", h.handleReports)
	mux.HandleFunc("/api/reports/export", h.handleExport)

	mux.HandleFunc("/health", h.handleHealth)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]interface{}{
		"monitoring":    h.monitor.Active(),
		"fast_interval": h.config.Monitor.FastInterval.String(),
		"slow_interval": h.config.Monitor.SlowInterval.String(),
		"guest_mode":    h.user == nil,
	}

	if h.user != nil {
		status["user"] = h.user.Username

		if snap, err := h.snapshots.GetLatest(h.user.ID); err == nil && snap != nil {
			status["last_snapshot"] = snap.RecordedAt.Format(time.RFC3339)
		}
	}

	if reading, err := h.monitor.CurrentStats(); err == nil {
		status["current"] = reading
		status["system_uptime"] = FormatSeconds(reading.SystemUptimeSeconds)
	}

	respondJSON(w, status)
}

// handleSnapshot persists one immediate snapshot outside the cadence.
func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.monitor.SaveNow(h.user); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save snapshot: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]string{"status": "saved"})
}

func (h *Handler) handleIdleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	interval, err := h.idle.StartIdle(h.user)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, interval)
}

func (h *Handler) handleIdleEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	interval, err := h.idle.EndIdle(h.user)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	if interval == nil {
		respondJSON(w, map[string]string{"status": "already online"})
		return
	}

	respondJSON(w, interval)
}

type generateRequest struct {
	Name  string              `json:"name"`
	Start string              `json:"start"`
	End   string              `json:"end"`
	Flags models.SectionFlags `json:"flags"`
}

func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listReports(w, r)
	case http.MethodPost:
		h.generateReport(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listReports(w http.ResponseWriter, _ *http.Request) {
	reports, err := h.reports.ListByUser(h.user)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	respondJSON(w, reports)
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	start, end, err := parsePeriod(req.Start, req.End)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, _, err := h.reports.Generate(h.user, req.Name, start, end, req.Flags)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, rep)
}

type exportRequest struct {
	generateRequest
	Format string `json:"format"`
}

// handleExport generates a report and renders its export package in one call.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	start, end, err := parsePeriod(req.Start, req.End)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, pkg, err := h.reports.Generate(h.user, req.Name, start, end, req.Flags)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	path, err := h.reports.Export(pkg, req.Format)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	respondJSON(w, map[string]interface{}{
		"report_id": rep.ID,
		"path":      path,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %v", err)
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %v", err)
	}
	return start, end, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, report.ErrNoUser), errors.Is(err, idle.ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, report.ErrInvalidPeriod), errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// FormatSeconds renders a second count with a rounded unit for API consumers.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds < 60 {
		return strconv.FormatInt(seconds, 10) + "s"
	}
	if seconds >= 3600 {
		return strconv.FormatInt(seconds/3600, 10) + "h"
	}
	return strconv.FormatInt(seconds/60, 10) + "m"
}
