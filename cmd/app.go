// Package cmd implements the alloc command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
	"github.com/etnz/capital/store"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Environment variables used as defaults for the global flags.
const (
	EnvStateFile = "ALLOC_STATE_FILE"
	EnvCurrency  = "ALLOC_CURRENCY"
	EnvUSDT      = "ALLOC_USDT"
	EnvVerbose   = "ALLOC_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	stateFile = flag.String("state-file", envOr(EnvStateFile, "portfolio.json"), "Path to the portfolio document")
	currency  = flag.String("currency", envOr(EnvCurrency, capital.Toman), "Display currency code. Amounts are never converted.")
	usdtPrice = flag.String("usdt", os.Getenv(EnvUSDT), "Tether price used to display crypto and foreign stock prices")
	Verbose   = flag.Bool("v", envBool(EnvVerbose), "Print diagnostics on stderr")
)

// standard streams of the commands.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// Setup applies the global flags. It must be called after flag.Parse.
func Setup() error {
	log.SetFlags(0)
	log.SetPrefix("alloc: ")
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
	if money.GetCurrency(*currency) == nil {
		return fmt.Errorf("unknown currency %q", *currency)
	}
	capital.DisplayCurrency = *currency
	return nil
}

// Register adds all alloc commands to c.
func Register(c *subcommands.Commander) {
	register(c, true)
}

func register(c *subcommands.Commander, withShell bool) {
	c.Register(&initCmd{}, "portfolio")
	c.Register(&addCmd{}, "portfolio")
	c.Register(&allocateCmd{}, "portfolio")
	c.Register(&adjustCmd{}, "portfolio")
	c.Register(&liquidateCmd{}, "portfolio")
	c.Register(&pnlCmd{}, "portfolio")

	c.Register(&itemAddCmd{}, "positions")
	c.Register(&itemRemoveCmd{}, "positions")
	c.Register(&buyCmd{}, "positions")
	c.Register(&priceCmd{}, "positions")
	c.Register(&statsCmd{}, "positions")

	c.Register(&showCmd{}, "reports")
	c.Register(&itemsCmd{}, "reports")
	c.Register(&logCmd{}, "reports")
	c.Register(&tradesCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")

	c.Register(&projectCmd{}, "projection")
	c.Register(&settingsCmd{}, "projection")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&resetCmd{}, "data")

	c.Register(&adviseCmd{}, "help")
	c.Register(&topicCmd{}, "help")
	if withShell {
		c.Register(&shellCmd{}, "")
	}
}

// Workspace is where commands load and save the portfolio.
type Workspace interface {
	Load() (*capital.State, error)
	Save(*capital.State) error
}

// workspace returns the workspace passed to Execute, or the state file.
func workspace(args []any) Workspace {
	if len(args) > 0 {
		if ws, ok := args[0].(Workspace); ok {
			return ws
		}
	}
	return store.NewFile(*stateFile)
}

// load returns the current portfolio, printing errors.
func load(args []any) (*capital.State, subcommands.ExitStatus) {
	s, err := workspace(args).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return s, subcommands.ExitSuccess
}

// apply runs op on the current portfolio and saves the result.
// name describes the operation in error messages.
func apply(args []any, name string, op func(*capital.State) (*capital.State, error)) (*capital.State, subcommands.ExitStatus) {
	ws := workspace(args)
	s, err := ws.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	n, err := op(s)
	if err != nil {
		fmt.Fprintf(stderr, "Error %s: %v\n", name, err)
		return nil, subcommands.ExitFailure
	}
	if err := ws.Save(n); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return n, subcommands.ExitSuccess
}

// renderMarkdown formats markdown for the terminal.
var renderMarkdown = func(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// printMarkdown prints md on stdout, raw if it cannot be rendered.
func printMarkdown(md string) {
	out, err := renderMarkdown(md)
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		out = md
	}
	fmt.Fprint(stdout, out)
}

// usage prints an argument error.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// assetKey resolves a user supplied asset name, ignoring case. Unknown names
// are returned as is and rejected by the portfolio.
func assetKey(s *capital.State, name string) capital.AssetKey {
	for _, key := range s.Assets.Keys() {
		if strings.EqualFold(string(key), name) {
			return key
		}
	}
	return capital.AssetKey(name)
}

func parseMoney(s string) (capital.Money, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return capital.Money{}, fmt.Errorf("invalid amount %q", s)
	}
	return capital.M(d), nil
}

func parseQuantity(s string) (capital.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return capital.Quantity{}, fmt.Errorf("invalid quantity %q", s)
	}
	return capital.Q(d), nil
}

func parsePercent(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return p, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid sub-item index %q", s)
	}
	return i, nil
}

// parseDate parses an optional date, today when empty.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// usdt returns the Tether price of the -usdt flag, zero when unset.
func usdt() (capital.Money, error) {
	if *usdtPrice == "" {
		return capital.M(0), nil
	}
	return parseMoney(*usdtPrice)
}
