package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pipet/internal/bucket"
	"pipet/internal/plugin"
	"pipet/internal/textutil"
)

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// indexColumn right-aligns the first column, which every pipet table uses
// for a registry or step index.
var indexColumn = []table.ColumnConfig{
	{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
}

// renderPackageTable lists every installed package with the registry index
// SetPackage accepts.
func renderPackageTable(reg *plugin.Registry) (string, error) {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"ID", "Package", "Description"})
	tw.SetColumnConfigs(indexColumn)

	titles := reg.Titles()
	for i := 0; i < reg.Len(); i++ {
		pkg, err := reg.ByIndex(i)
		if err != nil {
			return "", err
		}
		tw.AppendRow(table.Row{strconv.Itoa(i), titles[i], firstLine(pkg.Doc)})
	}
	return tw.Render(), nil
}

// renderStepTable lists a selected package's steps by run index, with the
// display-cased name used in human output.
func renderStepTable(steps map[int]string) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Index", "Step", "Display"})
	tw.SetColumnConfigs(indexColumn)

	for i := 0; i < len(steps); i++ {
		tw.AppendRow(table.Row{strconv.Itoa(i), steps[i], textutil.DisplayName(steps[i])})
	}
	return tw.Render()
}

// renderEntryTable lists resolved dataset files per subject.
func renderEntryTable(entries []bucket.Entry) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Subject", "File", "Path"})
	for _, entry := range entries {
		tw.AppendRow(table.Row{entry.Subject, entry.Filename, entry.RelPath})
	}
	return tw.Render()
}
