package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// ProjectionMarkdown renders the assumptions and the yearly projection.
func ProjectionMarkdown(in capital.ProjectionInput, years []capital.YearlyProjection) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	blended := capital.BlendedReturn(in.Weights, in.ExpectedReturns)
	doc.H1("Growth Projection")
	doc.BulletList(
		fmt.Sprintf("Base capital: %s", in.BaseCapital),
		fmt.Sprintf("Monthly contribution: %s, +%s per year", in.MonthlyContribution, in.AnnualIncrease),
		fmt.Sprintf("Blended annual return: %s", blended),
	)

	if len(years) == 0 {
		doc.PlainText("Nothing to project.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Year", "Contribution", "Invested", "Profit", "Value"},
		Rows:   [][]string{},
	}
	for _, y := range years {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(y.Year),
			y.MonthlyContribution.String(),
			y.TotalInvested.String(),
			y.Profit.SignedString(),
			y.TotalValue.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
