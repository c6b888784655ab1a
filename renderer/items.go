package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// ItemsMarkdown renders the positions of an asset.
func ItemsMarkdown(r *capital.ItemsReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", r.Name, r.Value))
	if r.Converted {
		doc.PlainText(fmt.Sprintf("Prices converted at %s per USDT.", r.USDT))
	}
	if len(r.Rows) == 0 {
		doc.PlainText("No sub-items.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"#", "Item", "Share", "Quantity", "Avg. Price", "Price", "Market Value", "Unrealized"},
		Rows:   [][]string{},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(row.Index),
			row.Name,
			row.Value.String(),
			row.Quantity.String(),
			row.AverageBuyPrice.String(),
			row.CurrentPrice.String(),
			row.MarketValue.String(),
			row.UnrealizedPnL.SignedString(),
		})
	}
	doc.Table(table)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Cost Basis", r.Cost.String()},
		Rows: [][]string{
			{"Market Value", r.Market.String()},
			{md.Bold("Unrealized P/L"), md.Bold(r.PnL.SignedString())},
		},
	})
	return doc.String()
}
