package capital

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Assets maps asset keys to their bucket. A valid portfolio always has exactly
// one Cash entry, without sub-items.
type Assets map[AssetKey]Asset

// Keys returns the asset keys in canonical order.
func (a Assets) Keys() []AssetKey {
	return slices.SortedFunc(maps.Keys(a), compareKeys)
}

// Total returns the sum of all asset values.
func (a Assets) Total() Money {
	total := M(0)
	for _, asset := range a {
		total = total.Add(asset.Value)
	}
	return total
}

// PercentageSum returns the sum of all asset percentages.
func (a Assets) PercentageSum() int {
	sum := 0
	for _, asset := range a {
		sum += asset.Percentage
	}
	return sum
}

// clone returns a shallow copy of the map: assets are copied by value but
// still share their sub-items until they are touched.
func (a Assets) clone() Assets {
	return maps.Clone(a)
}

// touch replaces the asset under key by a private copy and returns it for
// modification. The caller must store it back.
func (a Assets) touch(key AssetKey) Asset {
	return a[key].clone()
}

// RecalculatePercentages returns a copy of a where each percentage is the
// rounded share of its asset value in the total. The rounding remainder is
// absorbed by cash so that percentages sum to exactly 100. Cash never goes
// below zero.
//
// When the total value is zero the percentages are left unchanged.
func (a Assets) RecalculatePercentages() Assets {
	total := a.Total()
	if total.IsZero() {
		return a
	}
	hundred := decimal.NewFromInt(100)
	res := a.clone()
	sum := 0
	for key, asset := range res {
		pct := asset.Value.value.Div(total.value).Mul(hundred).Round(0)
		asset.Percentage = int(pct.IntPart())
		sum += asset.Percentage
		res[key] = asset
	}
	if sum != 100 {
		if cash, ok := res[Cash]; ok {
			cash.Percentage += 100 - sum
			res[Cash] = cash
		}
	}
	res.clampCash()
	return res
}

// clampCash keeps the cash percentage non negative: when rounding up the
// other assets overshoots 100, the excess is taken back from the largest
// ones, ties broken in canonical order.
func (a Assets) clampCash() {
	cash, ok := a[Cash]
	if !ok || cash.Percentage >= 0 {
		return
	}
	excess := -cash.Percentage
	cash.Percentage = 0
	a[Cash] = cash
	for ; excess > 0; excess-- {
		var largest AssetKey
		for _, key := range a.Keys() {
			if key != Cash && (largest == "" || a[key].Percentage > a[largest].Percentage) {
				largest = key
			}
		}
		if largest == "" || a[largest].Percentage == 0 {
			return
		}
		asset := a[largest]
		asset.Percentage--
		a[largest] = asset
	}
}

// MarshalJSON writes assets in canonical key order.
func (a Assets) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, key := range a.Keys() {
		w.Append(string(key), a[key])
	}
	return w.MarshalJSON()
}
