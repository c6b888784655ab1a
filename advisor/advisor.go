// Package advisor answers questions about a portfolio with a Gemini model.
//
// The model never modifies the portfolio: it reads a snapshot through the
// tools of the Analyst expert.
package advisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const prompt = "advise> "

// Advisor runs a question and answer session with an expert.
type Advisor struct {
	w      io.Writer
	r      *bufio.Reader
	Expert *Expert
}

// New creates an Advisor writing to w and reading the user questions from r.
func New(w io.Writer, r io.Reader, expert *Expert) *Advisor {
	return &Advisor{
		w:      w,
		r:      bufio.NewReader(r),
		Expert: expert,
	}
}

// Run starts the session. prompts are asked first, then questions are read
// until "bye" or the end of the input. With prompts and no interactive input
// Run stops after the last prompt.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, interactive bool, prompts ...string) error {
	if a.Expert.chat == nil {
		if err := a.Expert.Start(ctx, client); err != nil {
			return err
		}
	}

	for {
		var input string
		switch {
		case len(prompts) > 0:
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			if interactive {
				fmt.Fprintln(a.w, prompt+input)
			}
		case !interactive:
			return nil
		default:
			fmt.Fprint(a.w, prompt)
			var err error
			input, err = a.r.ReadString('\n')
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}
		content, err := a.Expert.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, Text(content))
	}
}

// Text concatenates the text parts of content.
func Text(content *genai.Content) string {
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
