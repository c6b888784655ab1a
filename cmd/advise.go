package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/capital/advisor"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type adviseCmd struct{}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask questions about the portfolio to Gemini" }
func (*adviseCmd) Usage() string {
	return `alloc advise [<question>]

  Answers a question about the portfolio, or starts a session reading
  questions until "bye". The model reads the portfolio, it never changes it.
  Requires the GEMINI_API_KEY environment variable.
`
}
func (*adviseCmd) SetFlags(*flag.FlagSet) {}

func (*adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	rate, err := usdt()
	if err != nil {
		return usage("%v", err)
	}
	s, status := load(args)
	if status != subcommands.ExitSuccess {
		return status
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := advisor.New(stdout, stdin, advisor.NewAnalyst(s, rate))
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := a.Run(ctx, client, len(prompts) == 0, prompts...); err != nil {
		fmt.Fprintln(stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
