package advisor

import (
	"context"
	"fmt"

	"github.com/etnz/capital"
	"github.com/etnz/capital/docs"
	"github.com/etnz/capital/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAnalyst returns the expert of the portfolio s. usdt is passed to the
// positions tool for display conversion, zero disables it.
func NewAnalyst(s *capital.State, usdt capital.Money) *Expert {
	lib := Tools(s, usdt)
	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a personal finance analyst. The user keeps a simple portfolio
				allocated across gold, Iran stock, foreign stock, crypto and cash.

				Always read the current allocation with the tools before answering,
				and use the growth projection tool for any question about the future.
				Amounts are in Toman unless the user says otherwise.

				You cannot modify the portfolio. When a change is advisable, tell the
				user which alloc command to run, and read the help topics to get it right.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the functions reading the snapshot s.
func Tools(s *capital.State, usdt capital.Money) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "portfolio_allocation",
				Description: "Returns the current allocation of the portfolio: target share, value, initial value and profit or loss of each asset.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the assets.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.AllocationMarkdown(capital.NewAllocationReport(s)), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "asset_positions",
				Description: "Returns the positions held inside an asset: quantity, average buy price, current price and unrealized profit or loss.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"asset": {
							Type:        genai.TypeString,
							Description: "The asset key.",
							Enum:        []string{"gold", "stock", "foreignStock", "crypto", "cash"},
						},
					},
					Required: []string{"asset"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the positions.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				key, ok := args["asset"].(string)
				if !ok {
					return "", fmt.Errorf("argument 'asset' is not a string as expected but %T", args["asset"])
				}
				r, err := capital.NewItemsReport(s, capital.AssetKey(key), usdt)
				if err != nil {
					return "", err
				}
				return renderer.ItemsMarkdown(r), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name: "growth_projection",
				Description: `Projects the growth of the portfolio year by year with compound interest.
				Without arguments it uses the user's saved projection settings.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"years": {
							Type:        genai.TypeInteger,
							Description: "Number of years to project.",
						},
						"monthly_contribution": {
							Type:        genai.TypeNumber,
							Description: "Amount added every month during the first year.",
						},
						"annual_increase": {
							Type:        genai.TypeNumber,
							Description: "Yearly increase of the monthly contribution, in percent.",
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table with the value, invested amount and profit at the end of each year.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				ps, err := projectionArgs(s.ProjectionSettings(), args)
				if err != nil {
					return "", err
				}
				in := s.ProjectionInput(ps)
				return renderer.ProjectionMarkdown(in, capital.Project(in)), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "help_topic",
				Description: "Returns the documentation of the alloc command line. Use topic 'readme' for the list of topics.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"topic": {Type: genai.TypeString, Description: "The topic name."},
					},
					Required: []string{"topic"},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "The topic in markdown."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				topic, _ := args["topic"].(string)
				if topic == "" || topic == "readme" {
					return docs.Index()
				}
				return docs.GetTopic(topic)
			},
		},
	}
}

// projectionArgs overrides ps with the optional tool arguments.
func projectionArgs(ps capital.ProjectionSettings, args map[string]any) (capital.ProjectionSettings, error) {
	number := func(name string) (float64, bool, error) {
		v, ok := args[name]
		if !ok {
			return 0, false, nil
		}
		f, ok := v.(float64)
		if !ok {
			return 0, false, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
		}
		return f, true, nil
	}

	if years, ok, err := number("years"); err != nil {
		return ps, err
	} else if ok {
		if years < 1 {
			return ps, fmt.Errorf("argument 'years' must be at least 1, got %v", years)
		}
		ps.Years = int(years)
	}
	if c, ok, err := number("monthly_contribution"); err != nil {
		return ps, err
	} else if ok {
		ps.MonthlyContribution = capital.M(c)
	}
	if inc, ok, err := number("annual_increase"); err != nil {
		return ps, err
	} else if ok {
		ps.AnnualIncrease = capital.Percent(inc)
	}
	return ps, nil
}
