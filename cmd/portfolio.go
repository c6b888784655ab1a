package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/capital"
	"github.com/google/subcommands"
)

// dateFlag registers the common -on flag.
func dateFlag(f *flag.FlagSet, on *string) {
	f.StringVar(on, "on", "", "Date of the operation (YYYY-MM-DD), today by default")
}

type initCmd struct {
	on string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "set the initial capital" }
func (*initCmd) Usage() string {
	return `alloc init [-on <date>] <amount>

  Sets the initial capital and spreads it across the assets according to their
  target percentages. It can be done only once per portfolio.
`
}
func (c *initCmd) SetFlags(f *flag.FlagSet) { dateFlag(f, &c.on) }

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("init requires an amount")
	}
	on, err := parseDate(c.on)
	if err != nil {
		return usage("%v", err)
	}
	amount, err := parseMoney(f.Arg(0))
	if err != nil {
		return usage("%v", err)
	}
	s, status := apply(args, "setting the initial capital", func(s *capital.State) (*capital.State, error) {
		return s.SetInitialCapital(on, amount)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Initial capital set to %s\n", s.TotalCapital)
	return subcommands.ExitSuccess
}

type addCmd struct {
	on string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add capital" }
func (*addCmd) Usage() string {
	return `alloc add [-on <date>] <amount>

  Adds capital: 20% goes to cash, the rest is spread over the other assets in
  proportion of their target percentages.
`
}
func (c *addCmd) SetFlags(f *flag.FlagSet) { dateFlag(f, &c.on) }

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("add requires an amount")
	}
	on, err := parseDate(c.on)
	if err != nil {
		return usage("%v", err)
	}
	amount, err := parseMoney(f.Arg(0))
	if err != nil {
		return usage("%v", err)
	}
	s, status := apply(args, "adding capital", func(s *capital.State) (*capital.State, error) {
		return s.AddCapital(on, amount)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Added %s, total capital is %s\n", amount, s.TotalCapital)
	return subcommands.ExitSuccess
}

type allocateCmd struct{}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "change the target percentage of an asset" }
func (*allocateCmd) Usage() string {
	return `alloc allocate <asset> <percent>

  Sets the target percentage of an asset. The difference is taken from, or
  given back to, cash together with the corresponding value.
`
}
func (*allocateCmd) SetFlags(*flag.FlagSet) {}

func (c *allocateCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("allocate requires an asset and a percentage")
	}
	pct, err := parsePercent(f.Arg(1))
	if err != nil {
		return usage("%v", err)
	}
	var key capital.AssetKey
	s, status := apply(args, "changing the allocation", func(s *capital.State) (*capital.State, error) {
		key = assetKey(s, f.Arg(0))
		return s.UpdatePercentage(key, pct)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "%s targets %d%%, cash %d%%\n", s.Assets[key].Name, pct, s.Assets[capital.Cash].Percentage)
	return subcommands.ExitSuccess
}

type adjustCmd struct {
	on string
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "set the value of an asset" }
func (*adjustCmd) Usage() string {
	return `alloc adjust [-on <date>] <asset> <value>

  Overrides the value of an asset. The difference is booked as its profit or
  loss and offset against cash. Percentages are recalculated.
`
}
func (c *adjustCmd) SetFlags(f *flag.FlagSet) { dateFlag(f, &c.on) }

func (c *adjustCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("adjust requires an asset and a value")
	}
	on, err := parseDate(c.on)
	if err != nil {
		return usage("%v", err)
	}
	value, err := parseMoney(f.Arg(1))
	if err != nil {
		return usage("%v", err)
	}
	var key capital.AssetKey
	s, status := apply(args, "adjusting the value", func(s *capital.State) (*capital.State, error) {
		key = assetKey(s, f.Arg(0))
		return s.AdjustValue(on, key, value)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	a := s.Assets[key]
	fmt.Fprintf(stdout, "%s is now worth %s (%d%%)\n", a.Name, a.Value, a.Percentage)
	return subcommands.ExitSuccess
}

type liquidateCmd struct {
	on string
}

func (*liquidateCmd) Name() string     { return "liquidate" }
func (*liquidateCmd) Synopsis() string { return "move part of an asset into cash" }
func (*liquidateCmd) Usage() string {
	return `alloc liquidate [-on <date>] <asset> <percent>

  Sells a percentage (1 to 100) of an asset value into cash.
`
}
func (c *liquidateCmd) SetFlags(f *flag.FlagSet) { dateFlag(f, &c.on) }

func (c *liquidateCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("liquidate requires an asset and a percentage")
	}
	on, err := parseDate(c.on)
	if err != nil {
		return usage("%v", err)
	}
	pct, err := parsePercent(f.Arg(1))
	if err != nil {
		return usage("%v", err)
	}
	s, status := apply(args, "liquidating", func(s *capital.State) (*capital.State, error) {
		return s.Liquidate(on, assetKey(s, f.Arg(0)), pct)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	last := s.Transactions[len(s.Transactions)-1]
	fmt.Fprintf(stdout, "%s: %s\n", last.Description, last.Amount)
	return subcommands.ExitSuccess
}

type pnlCmd struct {
	on      string
	loss    bool
	percent bool
}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "record a profit or a loss on an asset" }
func (*pnlCmd) Usage() string {
	return `alloc pnl [-loss] [-percent] [-on <date>] <asset> <amount>

  Records an external profit, or a loss with -loss. With -percent the amount
  is a percentage of the current asset value.
`
}
func (c *pnlCmd) SetFlags(f *flag.FlagSet) {
	dateFlag(f, &c.on)
	f.BoolVar(&c.loss, "loss", false, "record a loss instead of a profit")
	f.BoolVar(&c.percent, "percent", false, "the amount is a percentage of the asset value")
}

func (c *pnlCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("pnl requires an asset and an amount")
	}
	on, err := parseDate(c.on)
	if err != nil {
		return usage("%v", err)
	}

	var op func(*capital.State, capital.AssetKey) (*capital.State, error)
	if c.percent {
		p, err := parseRate(f.Arg(1))
		if err != nil {
			return usage("%v", err)
		}
		if c.loss {
			p = -p
		}
		op = func(s *capital.State, key capital.AssetKey) (*capital.State, error) {
			return s.RecordProfitLossPercent(on, key, p)
		}
	} else {
		amount, err := parseMoney(f.Arg(1))
		if err != nil {
			return usage("%v", err)
		}
		if c.loss {
			amount = amount.Neg()
		}
		op = func(s *capital.State, key capital.AssetKey) (*capital.State, error) {
			return s.RecordProfitLoss(on, key, amount)
		}
	}

	s, status := apply(args, "recording profit and loss", func(s *capital.State) (*capital.State, error) {
		return op(s, assetKey(s, f.Arg(0)))
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	last := s.Transactions[len(s.Transactions)-1]
	fmt.Fprintf(stdout, "%s: %s, total capital is %s\n", last.Description, last.Amount, s.TotalCapital)
	return subcommands.ExitSuccess
}
