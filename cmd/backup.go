package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capital"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a backup of the portfolio" }
func (*exportCmd) Usage() string {
	return `alloc export [-o <file>]

  Writes the whole portfolio, logs included, as an indented JSON document. By
  default the backup is written on the standard output.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "backup file, standard output when empty")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.output == "" {
		if err := capital.Export(stdout, s); err != nil {
			fmt.Fprintf(stderr, "Error exporting portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	w, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating backup: %v\n", err)
		return subcommands.ExitFailure
	}
	defer w.Close()
	if err := capital.Export(w, s); err != nil {
		fmt.Fprintf(stderr, "Error exporting portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stderr, "Portfolio exported to %s\n", c.output)
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the portfolio with a backup" }
func (*importCmd) Usage() string {
	return `alloc import <file>

  Replaces the whole portfolio with a backup written by 'alloc export'. A
  malformed backup is rejected and the portfolio is left untouched.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("import requires a backup file")
	}
	r, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error opening backup: %v\n", err)
		return subcommands.ExitFailure
	}
	defer r.Close()

	s, err := capital.Import(r)
	if err != nil {
		fmt.Fprintf(stderr, "Error importing %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	if err := workspace(args).Save(s); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Imported %d transactions and %d trades, total capital is %s\n", len(s.Transactions), len(s.TradeHistory), s.TotalCapital)
	return subcommands.ExitSuccess
}

type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "start over with an empty portfolio" }
func (*resetCmd) Usage() string {
	return `alloc reset -force

  Discards the portfolio and its logs, and restores the default allocation.
  Export a backup first if you may need it again.
`
}
func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "confirm the reset")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if !c.force {
		return usage("reset discards everything, confirm with -force")
	}
	if err := workspace(args).Save(capital.NewState()); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "Portfolio reset.")
	return subcommands.ExitSuccess
}
