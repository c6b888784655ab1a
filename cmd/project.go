package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/capital"
	"github.com/etnz/capital/renderer"
	"github.com/google/subcommands"
)

// assumptions holds the flags overriding the projection settings. Empty flags
// keep the saved value.
type assumptions struct {
	years        string
	base         string
	contribution string
	increase     string
	returns      map[string]string
}

func (c *assumptions) SetFlags(f *flag.FlagSet) {
	c.returns = make(map[string]string)
	f.StringVar(&c.years, "years", "", "number of projected years")
	f.StringVar(&c.base, "base", "", "starting capital, 0 for the current total capital")
	f.StringVar(&c.contribution, "contribution", "", "monthly contribution")
	f.StringVar(&c.increase, "increase", "", "yearly increase of the contribution in percent")
	f.Func("return", "expected annual return of an asset as <asset>=<percent>, can be repeated", func(v string) error {
		key, p, ok := strings.Cut(v, "=")
		if !ok {
			return fmt.Errorf("expected <asset>=<percent>, got %q", v)
		}
		c.returns[key] = p
		return nil
	})
}

func parseRate(s string) (capital.Percent, error) {
	p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return capital.Percent(p), nil
}

// changed reports whether any setting is overridden.
func (c *assumptions) changed() bool {
	return c.years != "" || c.base != "" || c.contribution != "" || c.increase != "" || len(c.returns) > 0
}

// apply overrides ps with the flags.
func (c *assumptions) apply(s *capital.State, ps capital.ProjectionSettings) (capital.ProjectionSettings, error) {
	var err error
	if c.years != "" {
		if ps.Years, err = strconv.Atoi(c.years); err != nil {
			return ps, fmt.Errorf("invalid number of years %q", c.years)
		}
	}
	if c.base != "" {
		if ps.BaseCapital, err = parseMoney(c.base); err != nil {
			return ps, err
		}
	}
	if c.contribution != "" {
		if ps.MonthlyContribution, err = parseMoney(c.contribution); err != nil {
			return ps, err
		}
	}
	if c.increase != "" {
		if ps.AnnualIncrease, err = parseRate(c.increase); err != nil {
			return ps, err
		}
	}
	for name, v := range c.returns {
		key := assetKey(s, name)
		if _, ok := s.Asset(key); !ok {
			return ps, fmt.Errorf("%q: %w", name, capital.ErrInvalidReference)
		}
		p, err := parseRate(v)
		if err != nil {
			return ps, err
		}
		if ps.ExpectedReturns == nil {
			ps.ExpectedReturns = make(map[capital.AssetKey]capital.Percent)
		}
		ps.ExpectedReturns[key] = p
	}
	return ps, nil
}

type projectCmd struct{ assumptions }

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the growth of the capital" }
func (*projectCmd) Usage() string {
	return `alloc project [-years <n>] [-base <amount>] [-contribution <amount>] [-increase <percent>] [-return <asset>=<percent>]...

  Projects the capital year by year, compounding monthly at the return of the
  assets weighted by their current value, with a monthly contribution growing
  every year. Flags override the saved settings for this run only, see
  'alloc settings' to change them.
`
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	ps, err := c.apply(s, s.ProjectionSettings())
	if err != nil {
		return usage("%v", err)
	}
	in := s.ProjectionInput(ps)
	printMarkdown(renderer.ProjectionMarkdown(in, capital.Project(in)))
	return subcommands.ExitSuccess
}

type settingsCmd struct{ assumptions }

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "display or change the projection settings" }
func (*settingsCmd) Usage() string {
	return `alloc settings [-years <n>] [-base <amount>] [-contribution <amount>] [-increase <percent>] [-return <asset>=<percent>]...

  Saves the projection assumptions. Without flags, prints them.
`
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if !c.changed() {
		s, status := load(args)
		if status != subcommands.ExitSuccess {
			return status
		}
		printSettings(s)
		return subcommands.ExitSuccess
	}
	var usageErr error
	s, status := apply(args, "saving the settings", func(s *capital.State) (*capital.State, error) {
		ps, err := c.apply(s, s.ProjectionSettings())
		if err != nil {
			usageErr = err
			return s, err
		}
		return s.SaveProjection(ps)
	})
	if usageErr != nil {
		return subcommands.ExitUsageError
	}
	if status != subcommands.ExitSuccess {
		return status
	}
	printSettings(s)
	return subcommands.ExitSuccess
}

func printSettings(s *capital.State) {
	ps := s.ProjectionSettings()
	base := ps.BaseCapital.String()
	if ps.BaseCapital.IsZero() {
		base = "current total capital"
	}
	fmt.Fprintf(stdout, "Years:        %d\n", ps.Years)
	fmt.Fprintf(stdout, "Base capital: %s\n", base)
	fmt.Fprintf(stdout, "Contribution: %s per month, +%s per year\n", ps.MonthlyContribution, ps.AnnualIncrease)
	for _, key := range s.Assets.Keys() {
		fmt.Fprintf(stdout, "Return of %s: %s\n", s.Assets[key].Name, ps.ExpectedReturns[key])
	}
}
