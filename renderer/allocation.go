package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// AllocationMarkdown renders the dashboard: one row per asset and the totals.
func AllocationMarkdown(r *capital.AllocationReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Allocation")
	if !r.Initialized {
		doc.PlainText("The initial capital has not been set yet. Target allocation:")
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Asset", "Share", "Value", "Initial Value", "Profit/Loss", "Return"},
		Rows:   [][]string{},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.Name,
			fmt.Sprintf("%d%%", row.Percentage),
			row.Value.String(),
			row.InitialValue.String(),
			row.ProfitLoss.SignedString(),
			row.Return.SignedString(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		"",
		md.Bold(r.TotalCapital.String()),
		"",
		md.Bold(r.TotalProfitLoss.SignedString()),
		"",
	})
	doc.Table(table)

	return doc.String()
}
