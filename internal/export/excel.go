package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ExcelRenderer writes an export package as a single-sheet xlsx workbook.
type ExcelRenderer struct {
	Dir string
}

func (r *ExcelRenderer) Extension() string {
	return "xlsx"
}

func (r *ExcelRenderer) Render(pkg *models.ExportPackage) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create export directory")
	}

	path := filepath.Join(r.Dir, fileName(pkg.Name, "xlsx"))

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", errors.Wrap(err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	row := 1
	set := func(values ...interface{}) {
		for col, v := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, row)
			if cellErr != nil {
				continue
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	blank := func() { row++ }

	set("Report Name: " + pkg.Name)
	set("Period: " + pkg.Period)

	if pkg.CpuAvg != nil {
		set(fmt.Sprintf("CPU Avg: %.2f", *pkg.CpuAvg))
	}
	if pkg.RamAvg != nil {
		set(fmt.Sprintf("RAM Avg: %.2f", *pkg.RamAvg))
	}
	if pkg.IdleSeconds != nil {
		set(fmt.Sprintf("Idle: %d", *pkg.IdleSeconds))
	}
	if pkg.AvgUptimeHours != nil {
		set(fmt.Sprintf("Avg Uptime: %.2f", *pkg.AvgUptimeHours))
	}
	blank()

	if len(pkg.Days) > 0 {
		set("Date", "Daily CPU Avg (%)", "Daily RAM Avg (MB)")
		for _, d := range pkg.Days {
			set(d.Date, d.CpuAvg, d.RamAvg)
		}
		blank()

		set("Date", "Application", "Usage (%)")
		for _, d := range pkg.Days {
			for _, app := range d.AppUsage {
				set(d.Date, app.App, app.Percent)
			}
		}
		blank()

		set("Date", "Uptime (h)")
		for _, d := range pkg.Days {
			set(d.Date, d.UptimeHours)
		}
		blank()

		set("Date", "Hour", "CPU (%)", "RAM (MB)")
		for _, d := range pkg.Days {
			for _, h := range d.Hours {
				set(d.Date, h.Hour, h.AvgCpu, h.AvgRam)
			}
		}
		blank()
	}

	if len(pkg.AppUsage) > 0 {
		set("Application Usage (Total)")
		for _, app := range pkg.AppUsage {
			set(app.App, app.Percent)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrap(err, "failed to save workbook")
	}

	return path, nil
}
