package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/capital"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the allocation dashboard" }
func (*showCmd) Usage() string {
	return `alloc show

  Displays the total capital and, for every asset, its target percentage, its
  value and its profit and loss.
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.AllocationMarkdown(capital.NewAllocationReport(s)))
	return subcommands.ExitSuccess
}

type itemsCmd struct{}

func (*itemsCmd) Name() string     { return "items" }
func (*itemsCmd) Synopsis() string { return "display the sub-items of an asset" }
func (*itemsCmd) Usage() string {
	return `alloc [-usdt <price>] items <asset>

  Displays the positions of an asset with their cost basis, market value and
  unrealized profit and loss. Crypto and foreign stock prices are converted
  with the global -usdt flag when it is set.
`
}
func (*itemsCmd) SetFlags(*flag.FlagSet) {}

func (*itemsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("items requires an asset")
	}
	rate, err := usdt()
	if err != nil {
		return usage("%v", err)
	}
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	r, err := capital.NewItemsReport(s, assetKey(s, f.Arg(0)), rate)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ItemsMarkdown(r))
	return subcommands.ExitSuccess
}
