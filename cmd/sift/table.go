package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

// renderTable draws a rounded table for interactive terminals and falls back
// to tab-separated lines when output is piped.
func renderTable(out io.Writer, headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	if !isTerminal(out) {
		return renderPlain(headers, rows)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

func renderPlain(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(headers, "\t"))
	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printLines(out io.Writer, lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
