package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/capital/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `alloc topic [-l] [<topic>...]

  Shows the documentation of the given topics, "*" for all of them, or the
  index when none is given.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "list the topics")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.Topics()
		if err != nil {
			fmt.Fprintf(stderr, "Error reading doc: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, t := range topics {
			fmt.Fprintf(stdout, "%-16s %s\n", t.Name, t.Title)
		}
		return subcommands.ExitSuccess
	}

	var (
		doc string
		err error
	)
	if f.NArg() == 0 {
		doc, err = docs.Index()
	} else {
		doc, err = docs.GetTopics(f.Args()...)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
