package roster_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		first string
		last  string
	}{
		{"two tokens", "Ada Lovelace", "Ada", "Lovelace"},
		{"middle names ignored", "John A. Smith", "John", "Smith"},
		{"extra whitespace", "  Grace   Brewster  Hopper ", "Grace", "Hopper"},
		{"single token", "Madonna", "", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			first, last := roster.SplitName(tt.input)

			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestGenerateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"first dot last", "first.last@acme.com", "ada.lovelace@acme.com"},
		{"initial and last", "first_initiallast@acme.com", "alovelace@acme.com"},
		{"first and last initial", "firstlast_initial@acme.com", "adal@acme.com"},
		{"both initials", "first_initial.last_initial", "a.l"},
		{"case-insensitive placeholders", "FIRST.Last@Acme.com", "ada.lovelace@acme.com"},
		{"empty format", "", ""},
		{"no placeholders", "info@acme.com", "info@acme.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, roster.GenerateEmail(tt.format, "Ada", "Lovelace"))
		})
	}
}

func TestBuildExportRows(t *testing.T) {
	t.Parallel()

	t.Run("derives rows from people", func(t *testing.T) {
		t.Parallel()

		people := []roster.Person{
			{Name: "Ada Lovelace", Position: "Analyst", ProfileURL: "https://www.linkedin.com/in/ada"},
			{Name: "Grace Hopper"},
		}

		rows := roster.BuildExportRows(people, roster.ExportSettings{Company: "Acme", EmailFormat: "first.last@acme.com"})

		require.Len(t, rows, 2)
		assert.Equal(t, roster.ExportRow{
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Position:   "Analyst",
			ProfileURL: "https://www.linkedin.com/in/ada",
			Email:      "ada.lovelace@acme.com",
			Company:    "Acme",
		}, rows[0])
		assert.Equal(t, "grace.hopper@acme.com", rows[1].Email)
		assert.Empty(t, rows[1].Position)
	})

	t.Run("drops people without a last name", func(t *testing.T) {
		t.Parallel()

		people := []roster.Person{{Name: "Madonna"}, {Name: "Ada Lovelace"}}

		rows := roster.BuildExportRows(people, roster.ExportSettings{})

		require.Len(t, rows, 1)
		assert.Equal(t, "Ada", rows[0].FirstName)
		assert.Empty(t, rows[0].Email)
	})
}

func TestFormatCSV(t *testing.T) {
	t.Parallel()

	t.Run("header only for no rows", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "First,Last,Position,LinkedIn,Email,Company", roster.FormatCSV(nil))
	})

	t.Run("quotes every field", func(t *testing.T) {
		t.Parallel()

		rows := []roster.ExportRow{{FirstName: "Ada", LastName: "Lovelace", Company: "Acme"}}

		got := roster.FormatCSV(rows)

		assert.Equal(t, "First,Last,Position,LinkedIn,Email,Company\n\"Ada\",\"Lovelace\",\"\",\"\",\"\",\"Acme\"", got)
	})

	t.Run("survives a csv reader", func(t *testing.T) {
		t.Parallel()

		rows := []roster.ExportRow{
			{FirstName: "Ada", LastName: "Lovelace", Position: `Head of "Engines", R&D`, Company: "Acme, Inc."},
			{FirstName: "Grace", LastName: "Hopper", Position: "Admiral\nNavy"},
		}

		records, err := csv.NewReader(strings.NewReader(roster.FormatCSV(rows))).ReadAll()

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, `Head of "Engines", R&D`, records[1][2])
		assert.Equal(t, "Acme, Inc.", records[1][5])
		assert.Equal(t, "Admiral\nNavy", records[2][2])
	})
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	t.Run("sanitizes company", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Acme_Inc_ 2024-03-05 14-07-09.csv", roster.ExportFilename("Acme Inc.", ts))
	})

	t.Run("defaults empty company", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Company 2024-03-05 14-07-09.csv", roster.ExportFilename("", ts))
	})
}

func TestExport(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	people := []roster.Person{{Name: "Ada Lovelace"}, {Name: "Cher"}}

	file := roster.Export(people, roster.ExportSettings{Company: "Acme"}, ts)

	assert.Equal(t, "Acme 2024-03-05 14-07-09.csv", file.Name)
	assert.Equal(t, 1, file.Rows)
	assert.Contains(t, file.Content, `"Ada","Lovelace"`)
}

func TestFormatPreview(t *testing.T) {
	t.Parallel()

	people := []roster.Person{
		{Name: "Ada Lovelace", Position: "Analyst"},
		{Name: "Grace Hopper"},
		{Name: "Alan Turing", Position: "Researcher"},
	}

	t.Run("truncates with remainder", func(t *testing.T) {
		t.Parallel()

		got := roster.FormatPreview(people, 2)

		assert.Equal(t, "Ada Lovelace  Analyst\nGrace Hopper  N/A\n... and 1 more", got)
	})

	t.Run("lists everything under the limit", func(t *testing.T) {
		t.Parallel()

		got := roster.FormatPreview(people, 10)

		assert.NotContains(t, got, "more")
		assert.Len(t, strings.Split(got, "\n"), 3)
	})

	t.Run("empty for no people", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, roster.FormatPreview(nil, 10))
	})
}
