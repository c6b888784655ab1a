package advisor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
	"google.golang.org/genai"
)

func snapshot(t *testing.T) *capital.State {
	t.Helper()
	s, err := capital.NewState().SetInitialCapital(date.New(2025, time.January, 1), capital.M(1_000_000))
	if err != nil {
		t.Fatalf("SetInitialCapital() error = %v", err)
	}
	return s
}

func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("response = %s/%s, want 1/%s", resp.ID, resp.Name, name)
	}
	return resp.Response
}

func TestTools(t *testing.T) {
	lib := NewLibrary(Tools(snapshot(t), capital.M(0)))

	tests := []struct {
		name string
		args map[string]any
		want string // substring of the output
	}{
		{"portfolio_allocation", nil, "Portfolio Allocation"},
		{"asset_positions", map[string]any{"asset": "gold"}, "Emami coin"},
		{"growth_projection", nil, "Growth Projection"},
		{"growth_projection", map[string]any{"years": 2.0, "monthly_contribution": 1000.0}, "Blended annual return"},
		{"help_topic", map[string]any{"topic": "projection"}, "# Projection"},
		{"help_topic", map[string]any{}, "alloc topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, lib, tt.name, tt.args)
			out, ok := resp["output"].(string)
			if !ok {
				t.Fatalf("%s() = %v, want an output", tt.name, resp)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s() output misses %q:\n%s", tt.name, tt.want, out)
			}
		})
	}
}

func TestTools_Errors(t *testing.T) {
	lib := NewLibrary(Tools(snapshot(t), capital.M(0)))

	tests := []struct {
		name string
		args map[string]any
	}{
		{"asset_positions", map[string]any{"asset": "bonds"}},
		{"asset_positions", map[string]any{"asset": 12.0}},
		{"growth_projection", map[string]any{"years": "ten"}},
		{"growth_projection", map[string]any{"years": 0.0}},
		{"help_topic", map[string]any{"topic": "no-such-topic"}},
		{"withdraw", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, lib, tt.name, tt.args)
			if _, ok := resp["error"].(string); !ok {
				t.Errorf("%s(%v) = %v, want an error", tt.name, tt.args, resp)
			}
		})
	}
}

func TestProjectionArgs(t *testing.T) {
	ps, err := projectionArgs(capital.DefaultProjectionSettings(), map[string]any{
		"years":                12.0,
		"monthly_contribution": 2500.0,
		"annual_increase":      7.5,
	})
	if err != nil {
		t.Fatalf("projectionArgs() error = %v", err)
	}
	if ps.Years != 12 || !ps.MonthlyContribution.Equal(capital.M(2500)) || !ps.AnnualIncrease.Equal(7.5) {
		t.Errorf("projectionArgs() = %+v, want 12 years, 2500 and 7.5%%", ps)
	}
}

func TestNewAnalyst(t *testing.T) {
	e := NewAnalyst(snapshot(t), capital.M(0))
	decls := e.Config.Tools[0].FunctionDeclarations
	if len(decls) != 4 {
		t.Errorf("len(FunctionDeclarations) = %d, want 4", len(decls))
	}
	if e.Library == nil {
		t.Error("Library is nil")
	}
}
