package format

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/storacha/rangestream/pkg/store/catalog"
)

// TableFormatter formats output as a table
type TableFormatter struct {
	writer io.Writer
}

// Format implements the Formatter interface for tables
func (f *TableFormatter) Format(data any) error {
	switch v := data.(type) {
	case []catalog.Entry:
		return f.formatEntries(v)
	case catalog.Entry:
		return f.formatEntries([]catalog.Entry{v})
	default:
		return fmt.Errorf("table format not supported for type %T", data)
	}
}

func (f *TableFormatter) formatEntries(entries []catalog.Entry) error {
	if len(entries) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		_, err := fmt.Fprintln(f.writer, empty.Render("No media found"))
		return err
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		size := "unknown"
		if e.Size > 0 {
			size = humanize.IBytes(uint64(e.Size))
		}
		rows = append(rows, table.Row{
			e.ID,
			size,
			e.MimeType,
			e.Created.Local().Format(time.DateTime),
		})
	}

	columns := []table.Column{
		{Title: "ID", Width: 40},
		{Title: "SIZE", Width: 12},
		{Title: "TYPE", Width: 20},
		{Title: "CREATED", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		// the height includes the two header lines
		table.WithHeight(len(rows)+2),
		table.WithWidth(100),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	// nothing is focused, so the selected row should look like the rest
	s.Selected = s.Cell
	t.SetStyles(s)

	view := t.View()
	if view == "" {
		return f.fallbackTextOutput(entries)
	}
	_, err := fmt.Fprintln(f.writer, view)
	return err
}

// fallbackTextOutput provides a simple text output when table rendering fails
func (f *TableFormatter) fallbackTextOutput(entries []catalog.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(f.writer, "%s\t%d\t%s\t%s\n", e.ID, e.Size, e.MimeType, e.Created.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
