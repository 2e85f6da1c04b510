package report

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Render formats the summary as a two-column table.
func (s Summary) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendRow(table.Row{"Files discovered", s.TotalFiles})
	tw.AppendRow(table.Row{"Converted", s.Succeeded})
	tw.AppendRow(table.Row{"Failed", s.Failed})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Original size", humanize.IBytes(uint64(s.OriginalBytes))})
	tw.AppendRow(table.Row{"Optimized size", humanize.IBytes(uint64(s.OptimizedBytes))})
	tw.AppendRow(table.Row{"Reduction", s.reductionCell()})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Elapsed", s.Elapsed.Round(elapsedPrecision(s.Elapsed)).String()})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func (s Summary) reductionCell() string {
	reduction, ok := s.Reduction()
	if !ok {
		return "n/a (no input bytes)"
	}
	return fmt.Sprintf("%.2f%%", reduction)
}

func elapsedPrecision(d time.Duration) time.Duration {
	if d >= time.Second {
		return 10 * time.Millisecond
	}
	return time.Millisecond
}
