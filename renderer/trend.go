package renderer

import (
	"bytes"
	"slices"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// TrendMarkdown renders the capital after each transaction.
func TrendMarkdown(points []capital.TrendPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Capital History")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Description", "Flow", "Capital"},
		Rows:      [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Date.String(),
			p.Description,
			p.Flow.SignedString(),
			p.Capital.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// MonthlyPnLMarkdown renders profit and loss per month, one column per asset.
// names resolves asset keys to display names.
func MonthlyPnLMarkdown(months []capital.MonthlyPnL, names map[capital.AssetKey]string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Profit and Loss")
	if len(months) == 0 {
		doc.PlainText("No profit or loss recorded.")
		return doc.String()
	}

	keys := pnlKeys(months)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Month"},
		Rows:      [][]string{},
	}
	for _, key := range keys {
		name := names[key]
		if name == "" {
			name = string(key)
		}
		table.Header = append(table.Header, name)
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	table.Header = append(table.Header, "Total")
	table.Alignment = append(table.Alignment, md.AlignRight)

	for _, m := range months {
		row := []string{m.Month}
		for _, key := range keys {
			row = append(row, m.ByAsset[key].SignedString())
		}
		row = append(row, md.Bold(m.Total.SignedString()))
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	return doc.String()
}

// pnlKeys returns the asset keys found in months, well known keys first.
func pnlKeys(months []capital.MonthlyPnL) []capital.AssetKey {
	seen := make(map[capital.AssetKey]bool)
	for _, m := range months {
		for key := range m.ByAsset {
			seen[key] = true
		}
	}
	var keys []capital.AssetKey
	for _, key := range capital.CanonicalKeys {
		if seen[key] {
			keys = append(keys, key)
			delete(seen, key)
		}
	}
	var others []capital.AssetKey
	for key := range seen {
		others = append(others, key)
	}
	slices.Sort(others)
	return append(keys, others...)
}
