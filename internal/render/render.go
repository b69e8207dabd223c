// Package render writes analysis results as JSON or as human-readable tables.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Format selects the output encoding.
type Format string

const (
	JSON  Format = "json"
	Table Format = "table"
)

// Options controls how results are written. Any format other than JSON is
// rendered as tables.
type Options struct {
	Format Format
	Color  bool
}

type palette struct {
	good, warn, bad, title func(...any) string
}

func (o Options) palette() palette {
	if !o.Color {
		return palette{good: fmt.Sprint, warn: fmt.Sprint, bad: fmt.Sprint, title: fmt.Sprint}
	}
	return palette{
		good:  color.New(color.FgGreen).SprintFunc(),
		warn:  color.New(color.FgYellow).SprintFunc(),
		bad:   color.New(color.FgRed).SprintFunc(),
		title: color.New(color.Bold).SprintFunc(),
	}
}

// score colours a 0-100 score by band.
func (p palette) score(v int) string {
	s := strconv.Itoa(v)
	switch {
	case v >= 80:
		return p.good(s)
	case v >= 50:
		return p.warn(s)
	default:
		return p.bad(s)
	}
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// writeTable renders one table. rightAlign right-aligns every cell.
func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign bool) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header(headers)
	if rightAlign {
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeSection(w io.Writer, p palette, title string) error {
	_, err := fmt.Fprintf(w, "\n%s\n", p.title(title))
	return err
}
