package renderer

import (
	"bytes"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// TransactionsMarkdown renders the capital log, oldest first.
func TransactionsMarkdown(txs []capital.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Date", "Kind", "Description", "Amount"},
		Rows:      [][]string{},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			string(tx.Kind),
			tx.Description,
			tx.Amount.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// TradesMarkdown renders the trade ledger, oldest first.
func TradesMarkdown(trades []capital.TradeRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trades")
	if len(trades) == 0 {
		doc.PlainText("No trades.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Type", "Asset", "Item", "Quantity", "Unit Price", "Total"},
		Rows:   [][]string{},
	}
	for _, tr := range trades {
		table.Rows = append(table.Rows, []string{
			tr.Date.String(),
			string(tr.Type),
			tr.AssetName,
			tr.SubItem,
			tr.Quantity.String(),
			tr.UnitPrice.String(),
			tr.TotalCost.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
