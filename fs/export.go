package fs

import (
	"path/filepath"

	"github.com/fwojciec/roster"
)

// ExportWriter writes CSV exports into a directory.
type ExportWriter struct {
	dir string
}

// NewExportWriter creates an ExportWriter for dir. The directory is created
// on first write.
func NewExportWriter(dir string) *ExportWriter {
	return &ExportWriter{dir: dir}
}

// Write saves file under its own name and returns the path written.
func (w *ExportWriter) Write(file *roster.ExportFile) (string, error) {
	if file == nil || file.Name == "" {
		return "", roster.Errorf(roster.EINVALID, "export file name required")
	}

	path := filepath.Join(w.dir, file.Name)
	if err := writeFile(path, []byte(file.Content)); err != nil {
		return "", err
	}
	return path, nil
}
