package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/capital"
	"github.com/google/subcommands"
)

type itemAddCmd struct{}

func (*itemAddCmd) Name() string     { return "item-add" }
func (*itemAddCmd) Synopsis() string { return "add a sub-item to an asset" }
func (*itemAddCmd) Usage() string {
	return `alloc item-add <asset> <name>

  Adds a named position to an asset. The asset value is split again evenly.
`
}
func (*itemAddCmd) SetFlags(*flag.FlagSet) {}

func (c *itemAddCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return usage("item-add requires an asset and a name")
	}
	name := strings.Join(f.Args()[1:], " ")
	var key capital.AssetKey
	s, status := apply(args, "adding the sub-item", func(s *capital.State) (*capital.State, error) {
		key = assetKey(s, f.Arg(0))
		return s.AddSubItem(key, name)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Added %q to %s as #%d\n", name, s.Assets[key].Name, len(s.Assets[key].SubItems)-1)
	return subcommands.ExitSuccess
}

type itemRemoveCmd struct{}

func (*itemRemoveCmd) Name() string     { return "item-remove" }
func (*itemRemoveCmd) Synopsis() string { return "remove a sub-item from an asset" }
func (*itemRemoveCmd) Usage() string {
	return `alloc item-remove <asset> <index>

  Removes a position, see 'alloc items' for the indexes.
`
}
func (*itemRemoveCmd) SetFlags(*flag.FlagSet) {}

func (c *itemRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("item-remove requires an asset and an index")
	}
	idx, err := parseIndex(f.Arg(1))
	if err != nil {
		return usage("%v", err)
	}
	var name string
	_, status := apply(args, "removing the sub-item", func(s *capital.State) (*capital.State, error) {
		key := assetKey(s, f.Arg(0))
		if a, ok := s.Asset(key); ok && idx >= 0 && idx < len(a.SubItems) {
			name = a.SubItems[idx].Name
		}
		return s.RemoveSubItem(key, idx)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Removed %q\n", name)
	return subcommands.ExitSuccess
}

type buyCmd struct {
	on       string
	quantity string
	price    string
	total    string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of a sub-item" }
func (*buyCmd) Usage() string {
	return `alloc buy -qty <quantity> [-price <unit price>] [-total <total cost>] [-on <date>] <asset> <index>

  Records a purchase: updates the average buy price and the quantity of the
  sub-item and appends it to the trade history. Give the unit price, the total
  cost or both.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	dateFlag(f, &c.on)
	f.StringVar(&c.quantity, "qty", "", "purchased quantity")
	f.StringVar(&c.price, "price", "0", "unit price")
	f.StringVar(&c.total, "total", "0", "total cost")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("buy requires an asset and an index")
	}
	idx, err := parseIndex(f.Arg(1))
	if err != nil {
		return usage("%v", err)
	}
	on, err := parseDate(c.on)
	if err != nil {
		return usage("%v", err)
	}
	var p capital.Purchase
	if p.Quantity, err = parseQuantity(c.quantity); err != nil {
		return usage("%v", err)
	}
	if p.UnitPrice, err = parseMoney(c.price); err != nil {
		return usage("%v", err)
	}
	if p.TotalCost, err = parseMoney(c.total); err != nil {
		return usage("%v", err)
	}

	s, status := apply(args, "recording the purchase", func(s *capital.State) (*capital.State, error) {
		return s.RecordSubItemPurchase(on, assetKey(s, f.Arg(0)), idx, p)
	})
	if status != subcommands.ExitSuccess {
		return status
	}
	tr := s.TradeHistory[len(s.TradeHistory)-1]
	fmt.Fprintf(stdout, "Bought %s %s at %s (%s)\n", tr.Quantity, tr.SubItem, tr.UnitPrice, tr.TotalCost)
	return subcommands.ExitSuccess
}

type priceCmd struct{}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "set the current price of a sub-item" }
func (*priceCmd) Usage() string {
	return `alloc price <asset> <index> <price>

  Sets the market price used to compute the unrealized profit and loss.
`
}
func (*priceCmd) SetFlags(*flag.FlagSet) {}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		return usage("price requires an asset, an index and a price")
	}
	idx, err := parseIndex(f.Arg(1))
	if err != nil {
		return usage("%v", err)
	}
	price, err := parseMoney(f.Arg(2))
	if err != nil {
		return usage("%v", err)
	}
	_, status := apply(args, "updating the price", func(s *capital.State) (*capital.State, error) {
		return s.UpdateCurrentPrice(assetKey(s, f.Arg(0)), idx, price)
	})
	return status
}

type statsCmd struct {
	avg      string
	quantity string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "override the average price and quantity of a sub-item" }
func (*statsCmd) Usage() string {
	return `alloc stats -avg <price> -qty <quantity> <asset> <index>

  Sets the average buy price and the quantity of a sub-item without recording
  a trade, for instance to enter positions bought before using alloc.
`
}
func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.avg, "avg", "0", "average buy price")
	f.StringVar(&c.quantity, "qty", "0", "quantity held")
}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("stats requires an asset and an index")
	}
	idx, err := parseIndex(f.Arg(1))
	if err != nil {
		return usage("%v", err)
	}
	avg, err := parseMoney(c.avg)
	if err != nil {
		return usage("%v", err)
	}
	qty, err := parseQuantity(c.quantity)
	if err != nil {
		return usage("%v", err)
	}
	_, status := apply(args, "updating the sub-item", func(s *capital.State) (*capital.State, error) {
		return s.SetSubItemStats(assetKey(s, f.Arg(0)), idx, avg, qty)
	})
	return status
}
