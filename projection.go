package capital

import (
	"maps"
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// projectionPlaces is the number of decimals kept between two simulated months.
const projectionPlaces = 12

// ProjectionInput is a read-only snapshot of what the growth projection needs.
type ProjectionInput struct {
	BaseCapital         Money
	Weights             map[AssetKey]Money   // current asset values
	ExpectedReturns     map[AssetKey]Percent // expected annual returns
	Years               int
	MonthlyContribution Money
	AnnualIncrease      Percent // yearly escalation of the contribution
}

// YearlyProjection is the projected state at the end of a year.
type YearlyProjection struct {
	Year                int
	TotalValue          Money
	TotalInvested       Money
	Profit              Money
	MonthlyContribution Money // contribution paid during that year
}

// ProjectionInput builds the projection input from the current portfolio.
// A zero base capital in ps means the current total capital.
func (s *State) ProjectionInput(ps ProjectionSettings) ProjectionInput {
	base := ps.BaseCapital
	if base.IsZero() {
		base = s.TotalCapital
	}
	weights := make(map[AssetKey]Money, len(s.Assets))
	for key, a := range s.Assets {
		weights[key] = a.Value
	}
	return ProjectionInput{
		BaseCapital:         base,
		Weights:             weights,
		ExpectedReturns:     ps.ExpectedReturns,
		Years:               ps.Years,
		MonthlyContribution: ps.MonthlyContribution,
		AnnualIncrease:      ps.AnnualIncrease,
	}
}

// BlendedReturn returns the average of the expected returns weighted by the
// current value of each asset. Assets without an expected return count as 0%.
//
// When there is no value at all, it is the plain mean of the expected
// returns, and 0 if none is configured.
func BlendedReturn(weights map[AssetKey]Money, returns map[AssetKey]Percent) Percent {
	total := M(0)
	for _, w := range weights {
		total = total.Add(w)
	}

	if !total.IsPositive() {
		keys := slices.SortedFunc(maps.Keys(returns), compareKeys)
		data := make(stats.Float64Data, 0, len(keys))
		for _, key := range keys {
			data = append(data, float64(returns[key]))
		}
		mean, err := stats.Mean(data)
		if err != nil {
			// no returns configured
			return 0
		}
		return Percent(mean)
	}

	blended := decimal.Zero
	for key, w := range weights {
		r, ok := returns[key]
		if !ok {
			continue
		}
		blended = blended.Add(w.value.Mul(decimal.NewFromFloat(float64(r))))
	}
	return Percent(blended.Div(total.value).InexactFloat64())
}

// EffectiveMonthlyRate returns the monthly rate that compounds to annual over
// twelve months: (1+annual)^(1/12) - 1.
func EffectiveMonthlyRate(annual Percent) decimal.Decimal {
	r := math.Pow(1+float64(annual)/100, 1.0/12) - 1
	if math.IsNaN(r) || math.IsInf(r, 0) {
		// a total loss (-100% or worse) has no monthly equivalent
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(r)
}

// Project simulates the growth of the capital month by month and returns one
// record per year. Contributions are paid at the start of each month, before
// the monthly return applies, and escalate by AnnualIncrease at each year end.
//
// Project is deterministic. A non positive number of years yields no record.
func Project(in ProjectionInput) []YearlyProjection {
	if in.Years <= 0 {
		return nil
	}
	rate := EffectiveMonthlyRate(BlendedReturn(in.Weights, in.ExpectedReturns))
	escalation := decimal.NewFromInt(1).Add(in.AnnualIncrease.Rate())

	capital := in.BaseCapital.value
	invested := capital
	contribution := in.MonthlyContribution.value

	res := make([]YearlyProjection, 0, in.Years)
	for year := 1; year <= in.Years; year++ {
		for range 12 {
			capital = capital.Add(contribution)
			invested = invested.Add(contribution)
			capital = capital.Add(capital.Mul(rate)).Round(projectionPlaces)
		}
		value := Money{value: capital}.Round(0)
		paid := Money{value: invested}.Round(0)
		res = append(res, YearlyProjection{
			Year:                year,
			TotalValue:          value,
			TotalInvested:       paid,
			Profit:              value.Sub(paid),
			MonthlyContribution: Money{value: contribution}.Round(0),
		})
		contribution = contribution.Mul(escalation).Round(projectionPlaces)
	}
	return res
}
