package genlint

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.followtheprocess.codes/genlint/internal/diagnostic"
)

// statistics writes a table of how many diagnostics each check reported to w.
func statistics(w io.Writer, diagnostics []diagnostic.Diagnostic) {
	var counts [diagnostic.NumCodes]int
	for _, d := range diagnostics {
		counts[d.Code]++
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Check", "Severity", "Count"})

	for _, code := range diagnostic.Codes() {
		t.AppendRow(table.Row{code.String(), code.Severity().String(), counts[code]})
	}

	t.AppendFooter(table.Row{"", "Total", len(diagnostics)})
	t.Render()
}
