package roster

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultCompanyName replaces an empty company name in export filenames.
const DefaultCompanyName = "Company"

// csvHeader is the first line of every export.
const csvHeader = "First,Last,Position,LinkedIn,Email,Company"

var (
	placeholderRe = regexp.MustCompile(`(?i)first_initial|last_initial|first|last`)
	unsafeNameRe  = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ExportSettings are the user settings applied at export time.
type ExportSettings struct {
	Company     string `yaml:"company"`
	EmailFormat string `yaml:"email_format"`
}

// ExportRow is one CSV line derived from a Person.
type ExportRow struct {
	FirstName  string
	LastName   string
	Position   string
	ProfileURL string
	Email      string
	Company    string
}

// ExportFile is a rendered CSV export.
type ExportFile struct {
	Name    string
	Content string
	Rows    int
}

// SplitName returns the first and last whitespace-separated tokens of name.
// Both are empty when name has fewer than two tokens.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[len(parts)-1]
}

// GenerateEmail fills an email format such as "first.last" or
// "first_initiallast@example.com". Placeholders are matched
// case-insensitively and the result is lowercased. An empty format yields "".
func GenerateEmail(format, first, last string) string {
	if format == "" {
		return ""
	}

	out := placeholderRe.ReplaceAllStringFunc(format, func(m string) string {
		switch strings.ToLower(m) {
		case "first_initial":
			return initial(first)
		case "last_initial":
			return initial(last)
		case "first":
			return first
		default:
			return last
		}
	})

	return strings.ToLower(out)
}

// BuildExportRows converts people into export rows. People whose first or
// last name cannot be determined are skipped.
func BuildExportRows(people []Person, settings ExportSettings) []ExportRow {
	rows := make([]ExportRow, 0, len(people))
	for _, p := range people {
		first, last := SplitName(p.Name)
		if first == "" || last == "" {
			continue
		}
		rows = append(rows, ExportRow{
			FirstName:  first,
			LastName:   last,
			Position:   p.Position,
			ProfileURL: p.ProfileURL,
			Email:      GenerateEmail(settings.EmailFormat, first, last),
			Company:    settings.Company,
		})
	}
	return rows
}

// FormatCSV renders rows as CSV. Every field is quoted.
func FormatCSV(rows []ExportRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvHeader)
	for _, r := range rows {
		fields := []string{r.FirstName, r.LastName, r.Position, r.ProfileURL, r.Email, r.Company}
		for i, f := range fields {
			fields[i] = quoteField(f)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// ExportFilename returns "<company> <YYYY-MM-DD> <HH-MM-SS>.csv" with every
// character outside [A-Za-z0-9] in the company name replaced by "_".
func ExportFilename(company string, t time.Time) string {
	if company == "" {
		company = DefaultCompanyName
	}
	return fmt.Sprintf("%s %s %s.csv",
		unsafeNameRe.ReplaceAllString(company, "_"),
		t.Format("2006-01-02"),
		t.Format("15-04-05"),
	)
}

// Export renders people as a CSV export named for settings.Company at t.
func Export(people []Person, settings ExportSettings, t time.Time) *ExportFile {
	rows := BuildExportRows(people, settings)
	return &ExportFile{
		Name:    ExportFilename(settings.Company, t),
		Content: FormatCSV(rows),
		Rows:    len(rows),
	}
}

// Preview returns at most limit people from the start of the list and the
// number left out.
func Preview(people []Person, limit int) (head []Person, more int) {
	if limit < 0 {
		limit = 0
	}
	if len(people) <= limit {
		return people, 0
	}
	return people[:limit], len(people) - limit
}

// PositionOrNA returns the position, or "N/A" when it is absent.
func PositionOrNA(p Person) string {
	if p.Position == "" {
		return "N/A"
	}
	return p.Position
}

// FormatPreview renders a short plain-text listing of the first limit people.
func FormatPreview(people []Person, limit int) string {
	if len(people) == 0 {
		return ""
	}

	head, more := Preview(people, limit)
	lines := make([]string, 0, len(head)+1)
	for _, p := range head {
		lines = append(lines, p.Name+"  "+PositionOrNA(p))
	}
	if more > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", more))
	}
	return strings.Join(lines, "\n")
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func initial(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return ""
	}
	return string(r)
}
