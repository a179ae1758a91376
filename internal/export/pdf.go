package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// PDFRenderer writes an export package as a PDF document.
type PDFRenderer struct {
	Dir string
}

func (r *PDFRenderer) Extension() string {
	return "pdf"
}

func (r *PDFRenderer) Render(pkg *models.ExportPackage) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create export directory")
	}

	path := filepath.Join(r.Dir, fileName(pkg.Name, "pdf"))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	line := func(text string) {
		pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
	}
	tableRow := func(widths []float64, cells ...string) {
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Report: "+pkg.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	line("Period: " + pkg.Period)

	if pkg.CpuAvg != nil {
		line(fmt.Sprintf("CPU Avg: %.2f%%", *pkg.CpuAvg))
	}
	if pkg.RamAvg != nil {
		line(fmt.Sprintf("RAM Avg: %.2f MB", *pkg.RamAvg))
	}
	if pkg.IdleSeconds != nil {
		line(fmt.Sprintf("Idle Time: %d sec", *pkg.IdleSeconds))
	}
	if pkg.AvgUptimeHours != nil {
		line(fmt.Sprintf("Avg Uptime: %.2f h/day", *pkg.AvgUptimeHours))
	}
	pdf.Ln(4)

	if len(pkg.Days) > 0 {
		heading("Daily CPU/RAM averages")
		for _, d := range pkg.Days {
			line(fmt.Sprintf("%s - CPU: %.2f%%, RAM: %.2f MB", d.Date, d.CpuAvg, d.RamAvg))
		}
		pdf.Ln(4)

		heading("Application usage by day")
		widths := []float64{35, 100, 35}
		tableRow(widths, "Date", "Application", "Percent")
		for _, d := range pkg.Days {
			for _, app := range d.AppUsage {
				tableRow(widths, d.Date, app.App, fmt.Sprintf("%.2f", app.Percent))
			}
		}
		pdf.Ln(4)

		heading("Uptime by day")
		for _, d := range pkg.Days {
			line(fmt.Sprintf("%s - %.2f h", d.Date, d.UptimeHours))
		}
		pdf.Ln(4)

		heading("Hourly statistics")
		widths = []float64{40, 30, 35, 35}
		tableRow(widths, "Date", "Hour", "CPU (%)", "RAM (MB)")
		for _, d := range pkg.Days {
			for _, h := range d.Hours {
				tableRow(widths, d.Date, fmt.Sprintf("%02d:00", h.Hour),
					fmt.Sprintf("%.2f", h.AvgCpu), fmt.Sprintf("%.2f", h.AvgRam))
			}
		}
		pdf.Ln(4)
	}

	if len(pkg.AppUsage) > 0 {
		heading("Total application usage")
		widths := []float64{120, 35}
		tableRow(widths, "Application", "Usage (%)")
		for _, app := range pkg.AppUsage {
			tableRow(widths, app.App, fmt.Sprintf("%.2f", app.Percent))
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", errors.Wrap(err, "failed to write pdf")
	}

	return path, nil
}
