package capital

import (
	"cmp"
	"encoding/json"
	"slices"
)

// AssetKey is the stable identifier of an asset class. Display names may
// change, keys never do.
type AssetKey string

// Well known asset keys.
const (
	Gold         AssetKey = "gold"
	Stock        AssetKey = "stock"
	ForeignStock AssetKey = "foreignStock"
	Crypto       AssetKey = "crypto"
	Cash         AssetKey = "cash"
)

// CanonicalKeys is the display and persistence order of the well known keys.
var CanonicalKeys = []AssetKey{Gold, Stock, ForeignStock, Crypto, Cash}

// rank returns the position of k in CanonicalKeys, unknown keys rank last.
func (k AssetKey) rank() int {
	if i := slices.Index(CanonicalKeys, k); i >= 0 {
		return i
	}
	return len(CanonicalKeys)
}

// compareKeys orders keys canonically, then alphabetically.
func compareKeys(a, b AssetKey) int {
	if c := cmp.Compare(a.rank(), b.rank()); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// SubItem is a named position inside an asset, like a coin or a ticker.
type SubItem struct {
	Name            string
	Value           Money    // share of the parent asset value
	Quantity        Quantity // units held
	AverageBuyPrice Money    // cost basis per unit
	CurrentPrice    Money    // market price per unit, user supplied
}

// CostBasis returns quantity times average buy price.
func (s SubItem) CostBasis() Money { return s.Quantity.MulPrice(s.AverageBuyPrice) }

// MarketValue returns quantity times current price.
func (s SubItem) MarketValue() Money { return s.Quantity.MulPrice(s.CurrentPrice) }

// UnrealizedPnL returns the market value minus the cost basis.
// It is zero while no current price is known.
func (s SubItem) UnrealizedPnL() Money {
	if s.CurrentPrice.IsZero() {
		return M(0)
	}
	return s.MarketValue().Sub(s.CostBasis())
}

func (s SubItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", s.Name)
	w.Append("value", s.Value)
	w.Optional("quantity", s.Quantity)
	w.Optional("averageBuyPrice", s.AverageBuyPrice)
	w.Optional("currentPrice", s.CurrentPrice)
	return w.MarshalJSON()
}

func (s *SubItem) UnmarshalJSON(data []byte) error {
	var temp struct {
		Name            string   `json:"name"`
		Value           Money    `json:"value"`
		Quantity        Quantity `json:"quantity"`
		AverageBuyPrice Money    `json:"averageBuyPrice"`
		CurrentPrice    Money    `json:"currentPrice"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*s = SubItem(temp)
	return nil
}

// Asset is one allocation bucket.
//
// Percentage is a target figure; only RecalculatePercentages makes the
// percentages of a portfolio sum to 100.
type Asset struct {
	Name         string    `json:"name"`
	Percentage   int       `json:"percentage"`
	Value        Money     `json:"value"`
	InitialValue Money     `json:"initialValue"` // baseline for profit and loss
	ProfitLoss   Money     `json:"profitLoss"`   // running total of explicit adjustments
	SubItems     []SubItem `json:"subItems"`
}

// Return returns the growth of the asset since its initial value, in percent.
// It is zero when there is no initial value.
func (a Asset) Return() Percent {
	if a.InitialValue.IsZero() {
		return 0
	}
	r := a.Value.Sub(a.InitialValue).DivMoney(a.InitialValue)
	return Percent(r.value.InexactFloat64() * 100)
}

// split spreads the asset value evenly across its sub-items.
// Without sub-items there is nothing to do.
func (a *Asset) split() {
	n := len(a.SubItems)
	if n == 0 {
		return
	}
	share := a.Value.Div(Q(n))
	for i := range a.SubItems {
		a.SubItems[i].Value = share
	}
}

// clone returns a copy of a that does not share its sub-items.
func (a Asset) clone() Asset {
	a.SubItems = slices.Clone(a.SubItems)
	if a.SubItems == nil {
		a.SubItems = []SubItem{}
	}
	return a
}
