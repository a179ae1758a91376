package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"
)

// CSVRenderer writes an export package as a single CSV file with one block
// per section.
type CSVRenderer struct {
	Dir string
}

func (r *CSVRenderer) Extension() string {
	return "csv"
}

func (r *CSVRenderer) Render(pkg *models.ExportPackage) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create export directory")
	}

	path := filepath.Join(r.Dir, fileName(pkg.Name, "csv"))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to create csv file")
	}
	defer file.Close()

	w := csv.NewWriter(file)

	write := func(record ...string) {
		_ = w.Write(record)
	}

	write("Report", pkg.Name)
	write("Period", pkg.Period)

	if pkg.CpuAvg != nil {
		write("CPU Avg", fmt.Sprintf("%.2f", *pkg.CpuAvg))
	}
	if pkg.RamAvg != nil {
		write("RAM Avg", fmt.Sprintf("%.2f", *pkg.RamAvg))
	}
	if pkg.IdleSeconds != nil {
		write("Idle Time", fmt.Sprintf("%d", *pkg.IdleSeconds))
	}
	if pkg.AvgUptimeHours != nil {
		write("Avg Uptime", fmt.Sprintf("%.2f", *pkg.AvgUptimeHours))
	}

	if len(pkg.Days) > 0 {
		write("")
		write("Date", "Daily CPU Avg", "Daily RAM Avg")
		for _, d := range pkg.Days {
			write(d.Date, fmt.Sprintf("%.2f", d.CpuAvg), fmt.Sprintf("%.2f", d.RamAvg))
		}

		write("")
		write("Date", "Application", "Usage (%)")
		for _, d := range pkg.Days {
			for _, app := range d.AppUsage {
				write(d.Date, app.App, fmt.Sprintf("%.2f", app.Percent))
			}
		}

		write("")
		write("Date", "Uptime Hours")
		for _, d := range pkg.Days {
			write(d.Date, fmt.Sprintf("%.2f", d.UptimeHours))
		}

		write("")
		write("Date", "Hour", "CPU", "RAM")
		for _, d := range pkg.Days {
			for _, h := range d.Hours {
				write(d.Date, fmt.Sprintf("%02d:00", h.Hour),
					fmt.Sprintf("%.2f", h.AvgCpu), fmt.Sprintf("%.2f", h.AvgRam))
			}
		}
	}

	if len(pkg.AppUsage) > 0 {
		write("")
		write("Total Application Usage")
		write("Application", "Usage (%)")
		for _, app := range pkg.AppUsage {
			write(app.App, fmt.Sprintf("%.2f", app.Percent))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "failed to write csv")
	}

	return path, nil
}
