// Package export renders export packages to files. Renderers are pure
// consumers of the package schema: sections and rows are written in the
// order the package carries them, never reordered.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned for format keys no renderer implements.
var ErrUnknownFormat = errors.New("unknown export format")

// Renderer writes one export package to a file and returns its path.
type Renderer interface {
	Render(pkg *models.ExportPackage) (string, error)
	Extension() string
}

// ForFormat selects a renderer by format key. An empty dir resolves to the
// user's download directory.
func ForFormat(key, dir string) (Renderer, error) {
	if dir == "" {
		dir = DownloadDir()
	}

	switch strings.ToLower(key) {
	case "csv":
		return &CSVRenderer{Dir: dir}, nil
	case "excel", "xlsx":
		return &ExcelRenderer{Dir: dir}, nil
	case "pdf":
		return &PDFRenderer{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
	}
}

// fileName flattens a report name into one path component so a name like
// "../x" cannot escape the export directory.
func fileName(name, ext string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "report"
	}
	return name + "." + ext
}

// DownloadDir returns ~/Downloads when it exists, falling back to the home
// directory, then the working directory.
func DownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads
	}
	return home
}
