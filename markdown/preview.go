// Package markdown renders collected people as Markdown.
package markdown

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/roster"
	"github.com/nao1215/markdown"
)

// WritePreview writes a heading, a table of the first limit people, and a
// trailing note when more people were collected.
func WritePreview(w io.Writer, people []roster.Person, limit int) error {
	md := markdown.NewMarkdown(w)

	md.H1("People")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("Collected: %d", len(people)))
	md.PlainText("")

	if len(people) == 0 {
		md.PlainText("_No people collected yet._")
		return md.Build()
	}

	head, more := roster.Preview(people, limit)
	rows := make([][]string, 0, len(head))
	for i, p := range head {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			roster.PositionOrNA(p),
			profileLink(p.ProfileURL),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Name", "Position", "Profile"},
		Rows:   rows,
	})

	if more > 0 {
		md.PlainText("")
		md.PlainText(fmt.Sprintf("... and %d more", more))
	}

	return md.Build()
}

func profileLink(url string) string {
	if url == "" {
		return "-"
	}
	return fmt.Sprintf("[profile](%s)", url)
}
