package fs

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fwojciec/roster"
)

const (
	sourcePrefix = "<!-- source: "
	sourceSuffix = " -->"
)

// SnapshotName converts a document URL to a file name.
// Example: https://www.linkedin.com/company/acme/people/ → company_acme_people.html
func SnapshotName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", roster.Errorf(roster.EINVALID, "invalid snapshot URL %q", rawURL)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "index.html", nil
	}
	return strings.ReplaceAll(path, "/", "_") + ".html", nil
}

// FormatSnapshot prefixes the snapshot markup with a comment naming its URL.
func FormatSnapshot(snap *roster.Snapshot) string {
	return sourcePrefix + snap.URL + sourceSuffix + "\n" + snap.HTML
}

// ParseSnapshot reads a saved page. The URL comes from the source comment
// written by FormatSnapshot, or fallbackURL when there is none.
func ParseSnapshot(data []byte, fallbackURL string) *roster.Snapshot {
	line, rest, _ := bytes.Cut(data, []byte("\n"))
	s := string(bytes.TrimSpace(line))
	if strings.HasPrefix(s, sourcePrefix) && strings.HasSuffix(s, sourceSuffix) {
		u := strings.TrimSuffix(strings.TrimPrefix(s, sourcePrefix), sourceSuffix)
		return &roster.Snapshot{URL: u, HTML: string(rest)}
	}
	return &roster.Snapshot{URL: fallbackURL, HTML: string(data)}
}

// SnapshotWriter saves page snapshots into a directory.
type SnapshotWriter struct {
	dir string
}

// NewSnapshotWriter creates a SnapshotWriter for dir.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{dir: dir}
}

// Save writes snap and returns the path written.
func (w *SnapshotWriter) Save(snap *roster.Snapshot) (string, error) {
	name, err := SnapshotName(snap.URL)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, name)
	if err := writeFile(path, []byte(FormatSnapshot(snap))); err != nil {
		return "", err
	}
	return path, nil
}
