package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/capital"
	"github.com/etnz/capital/store"
	"github.com/google/subcommands"
	"github.com/mattn/go-shellwords"
)

// shellWorkspace keeps the portfolio in memory and saves it in the
// background.
type shellWorkspace struct {
	state *capital.State
	saver *store.Saver
}

func (w *shellWorkspace) Load() (*capital.State, error) { return w.state, nil }

func (w *shellWorkspace) Save(s *capital.State) error {
	w.state = s
	return w.saver.Schedule(s)
}

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "run commands interactively" }
func (*shellCmd) Usage() string {
	return `alloc shell

  Reads commands from the standard input, one per line, without the 'alloc'
  prefix. The portfolio is kept in memory and saved a couple of seconds after
  the last change, and when leaving with "exit" or "quit".
`
}
func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (*shellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file := store.NewFile(*stateFile)
	s, err := file.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	ws := &shellWorkspace{state: s, saver: store.NewSaver(file, store.DefaultDelay)}

	status := runShell(ctx, ws, stdin)
	if err := ws.saver.Close(); err != nil {
		fmt.Fprintf(stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	return status
}

// runShell executes the commands read from r against ws.
func runShell(ctx context.Context, ws Workspace, r io.Reader) subcommands.ExitStatus {
	in := bufio.NewReader(r)
	// commands reading the standard input share the shell buffer.
	defer func(prev io.Reader) { stdin = prev }(stdin)
	stdin = in

	for {
		fmt.Fprint(stdout, "alloc> ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(stderr, "Error reading command: %v\n", err)
			return subcommands.ExitFailure
		}
		words, perr := shellwords.Parse(strings.TrimSpace(line))
		switch {
		case perr != nil:
			fmt.Fprintf(stderr, "Error: %v\n", perr)
		case len(words) == 0:
		case words[0] == "exit" || words[0] == "quit":
			return subcommands.ExitSuccess
		default:
			runLine(ctx, ws, words)
		}
		if err != nil { // EOF
			fmt.Fprintln(stdout)
			return subcommands.ExitSuccess
		}
	}
}

// runLine executes one command with a fresh commander, so that flags do
// not leak from one line to the next.
func runLine(ctx context.Context, ws Workspace, words []string) subcommands.ExitStatus {
	fs := flag.NewFlagSet("alloc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cdr := subcommands.NewCommander(fs, "alloc")
	cdr.Output = stdout
	cdr.Error = stderr
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")
	register(cdr, false)
	if err := fs.Parse(words); err != nil {
		return subcommands.ExitUsageError
	}
	return cdr.Execute(ctx, ws)
}
