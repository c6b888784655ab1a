package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

// filter holds the flags shared by the log commands.
type filter struct {
	asset  string
	period string
	from   string
	to     string
}

func (c *filter) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "only entries of this asset")
	f.StringVar(&c.period, "p", "", "period ending at -to (day, month, year)")
	f.StringVar(&c.from, "from", "", "first date included (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "last date included (YYYY-MM-DD)")
}

// dates returns the selected range. Missing boundaries are open.
func (c *filter) dates() (date.Range, error) {
	var r date.Range
	var err error
	if c.to != "" {
		if r.To, err = date.Parse(c.to); err != nil {
			return r, err
		}
	}
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return r, err
		}
		end := r.To
		if end.IsZero() {
			end = date.Today()
		}
		r = date.Range{From: end.StartOf(p), To: end}
	}
	if c.from != "" {
		if r.From, err = date.Parse(c.from); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (c *filter) key(s *capital.State) capital.AssetKey {
	if c.asset == "" {
		return ""
	}
	return assetKey(s, c.asset)
}

type logCmd struct{ filter }

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the capital transactions" }
func (*logCmd) Usage() string {
	return `alloc log [-asset <asset>] [-p <period>] [-from <date>] [-to <date>]

  Lists the capital transactions: initial capital, deposits, adjustments,
  liquidations, profits and losses.
`
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	r, err := c.dates()
	if err != nil {
		return usage("%v", err)
	}
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	txs := capital.FilterTransactions(s, r, c.key(s))
	if len(txs) == 0 {
		fmt.Fprintln(stdout, "No transactions.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}

type tradesCmd struct{ filter }

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "display the trade history" }
func (*tradesCmd) Usage() string {
	return `alloc trades [-asset <asset>] [-p <period>] [-from <date>] [-to <date>]

  Lists the purchases recorded with 'alloc buy'.
`
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	r, err := c.dates()
	if err != nil {
		return usage("%v", err)
	}
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	trades := capital.FilterTrades(s, r, c.key(s))
	if len(trades) == 0 {
		fmt.Fprintln(stdout, "No trades.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TradesMarkdown(trades))
	return subcommands.ExitSuccess
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the capital trend and the monthly profit and loss" }
func (*historyCmd) Usage() string {
	return `alloc history

  Replays the transaction log to show how the capital evolved, then sums up
  the profit and loss of each month per asset.
`
}
func (*historyCmd) SetFlags(*flag.FlagSet) {}

func (*historyCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if len(s.Transactions) == 0 {
		fmt.Fprintln(stdout, "No transactions.")
		return subcommands.ExitSuccess
	}
	names := make(map[capital.AssetKey]string, len(s.Assets))
	for key, a := range s.Assets {
		names[key] = a.Name
	}
	printMarkdown(renderer.TrendMarkdown(capital.NewTrendReport(s)) + "\n" +
		renderer.MonthlyPnLMarkdown(capital.NewMonthlyPnLReport(s), names))
	return subcommands.ExitSuccess
}
