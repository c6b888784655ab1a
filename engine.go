package capital

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/capital/date"
	"github.com/shopspring/decimal"
)

// cashShare is the part of every capital injection that stays liquid.
var cashShare = decimal.NewFromInt(20)

// pct converts an integer percentage to a decimal.
func pct(p int) decimal.Decimal { return decimal.NewFromInt(int64(p)) }

// lookup returns the asset under key, or an ErrInvalidReference.
func (s *State) lookup(key AssetKey) (Asset, error) {
	a, ok := s.Assets[key]
	if !ok {
		return Asset{}, fmt.Errorf("asset %q: %w", key, ErrInvalidReference)
	}
	return a, nil
}

// lookupItem returns the asset under key, checking that idx is one of its sub-items.
func (s *State) lookupItem(key AssetKey, idx int) (Asset, error) {
	a, err := s.lookup(key)
	if err != nil {
		return a, err
	}
	if idx < 0 || idx >= len(a.SubItems) {
		return a, fmt.Errorf("sub-item %d of %q: %w", idx, key, ErrInvalidReference)
	}
	return a, nil
}

// lookupPair returns a non cash asset and the cash asset.
func (s *State) lookupPair(key AssetKey, op string) (asset, cash Asset, err error) {
	if key == Cash {
		return asset, cash, fmt.Errorf("%s on cash: %w", op, ErrForbidden)
	}
	if asset, err = s.lookup(key); err != nil {
		return
	}
	cash, err = s.lookup(Cash)
	return
}

// SetInitialCapital spreads amount across the assets according to their
// percentages. Each asset value becomes its initial value.
//
// Cash receives whatever the other percentages leave, so that the total is
// exactly amount even when percentages do not sum to 100.
func (s *State) SetInitialCapital(on date.Date, amount Money) (*State, error) {
	if s.Initialized {
		return s, ErrAlreadyInitialized
	}
	if !amount.IsPositive() {
		return s, fmt.Errorf("initial capital %s: %w", amount, ErrInvalidAmount)
	}
	if _, err := s.lookup(Cash); err != nil {
		return s, err
	}

	n := s.clone()
	allocated := M(0)
	for _, key := range n.Assets.Keys() {
		if key == Cash {
			continue
		}
		a := n.Assets.touch(key)
		a.Value = amount.percentOf(pct(a.Percentage))
		a.InitialValue = a.Value
		a.split()
		n.Assets[key] = a
		allocated = allocated.Add(a.Value)
	}
	cash := n.Assets.touch(Cash)
	cash.Value = amount.Sub(allocated)
	cash.InitialValue = cash.Value
	n.Assets[Cash] = cash

	n.Initialized = true
	n.settle()
	n.log(Transaction{Date: on, Kind: KindInitial, Description: descInitial, Amount: amount})
	return n, nil
}

// AddCapital injects amount: 20% goes to cash, the remaining 80% is spread
// over the other assets in proportion of their percentages among non cash
// assets. Injected money also raises the initial values.
//
// Whatever the proportional split cannot place stays in cash, in particular
// everything when cash holds 100% of the allocation.
func (s *State) AddCapital(on date.Date, amount Money) (*State, error) {
	if !s.Initialized {
		return s, ErrNotInitialized
	}
	if !amount.IsPositive() {
		return s, fmt.Errorf("capital increase %s: %w", amount, ErrInvalidAmount)
	}
	if _, err := s.lookup(Cash); err != nil {
		return s, err
	}

	n := s.clone()
	cash := n.Assets.touch(Cash)
	cashPart := amount.percentOf(cashShare)
	investable := amount.Sub(cashPart)
	investablePct := 100 - cash.Percentage

	placed := M(0)
	if investablePct > 0 {
		for _, key := range n.Assets.Keys() {
			if key == Cash {
				continue
			}
			a := n.Assets.touch(key)
			share := investable.MulRate(pct(a.Percentage)).Div(Q(investablePct))
			a.Value = a.Value.Add(share)
			a.InitialValue = a.InitialValue.Add(share)
			a.split()
			n.Assets[key] = a
			placed = placed.Add(share)
		}
	}
	liquid := cashPart.Add(investable.Sub(placed))
	cash.Value = cash.Value.Add(liquid)
	cash.InitialValue = cash.InitialValue.Add(liquid)
	n.Assets[Cash] = cash

	n.settle()
	n.log(Transaction{Date: on, Kind: KindDeposit, Description: descDeposit, Amount: amount})
	return n, nil
}

// UpdatePercentage sets the target percentage of key and moves the
// corresponding value from or to cash. The total capital is unchanged and
// nothing is logged.
//
// Setting the current percentage again returns s itself.
func (s *State) UpdatePercentage(key AssetKey, newPct int) (*State, error) {
	a, cash, err := s.lookupPair(key, "percentage update")
	if err != nil {
		return s, err
	}
	if newPct < 0 || newPct > 100 {
		return s, fmt.Errorf("percentage %d: %w", newPct, ErrInvalidAmount)
	}
	diff := newPct - a.Percentage
	if diff == 0 {
		return s, nil
	}
	if cash.Percentage-diff < 0 {
		return s, fmt.Errorf("cash cannot give %d%%, it holds %d%%: %w", diff, cash.Percentage, ErrInvalidAmount)
	}

	change := s.TotalCapital.percentOf(pct(diff))
	if a.Value.Add(change).IsNegative() {
		return s, fmt.Errorf("%s holds %s: %w", a.Name, a.Value, ErrInsufficientFunds)
	}
	if cash.Value.Sub(change).IsNegative() {
		return s, fmt.Errorf("cash holds %s: %w", cash.Value, ErrInsufficientFunds)
	}

	n := s.clone()
	a = n.Assets.touch(key)
	a.Percentage = newPct
	a.Value = a.Value.Add(change)
	a.InitialValue = a.InitialValue.Add(change)
	a.split()
	n.Assets[key] = a

	cash.Percentage -= diff
	cash.Value = cash.Value.Sub(change)
	cash.InitialValue = cash.InitialValue.Sub(change)
	n.Assets[Cash] = cash
	return n, nil
}

// AdjustValue overrides the value of key, typically to reflect an external
// valuation. The difference is booked as profit or loss of the asset and is
// taken from, or given to, cash. Percentages are then recomputed.
func (s *State) AdjustValue(on date.Date, key AssetKey, newValue Money) (*State, error) {
	a, cash, err := s.lookupPair(key, "manual adjustment")
	if err != nil {
		return s, err
	}
	if newValue.IsNegative() {
		return s, fmt.Errorf("value %s: %w", newValue, ErrInvalidAmount)
	}
	diff := newValue.Sub(a.Value)
	if diff.IsZero() {
		return s, nil
	}
	if cash.Value.Sub(diff).IsNegative() {
		return s, fmt.Errorf("cash holds %s, adjustment needs %s: %w", cash.Value, diff, ErrInsufficientFunds)
	}

	n := s.clone()
	a = n.Assets.touch(key)
	a.Value = newValue
	a.ProfitLoss = a.ProfitLoss.Add(diff)
	a.split()
	n.Assets[key] = a

	cash.Value = cash.Value.Sub(diff)
	n.Assets[Cash] = cash

	n.Assets = n.Assets.RecalculatePercentages()
	n.settle()
	n.log(Transaction{Date: on, Kind: KindAdjust, Asset: key, Description: describeAdjust(a.Name), Amount: diff.Abs()})
	return n, nil
}

// Liquidate moves pct percent of the value of key into cash. It is a
// realization of existing value: profit and loss are untouched.
func (s *State) Liquidate(on date.Date, key AssetKey, pctToSell int) (*State, error) {
	a, cash, err := s.lookupPair(key, "liquidation")
	if err != nil {
		return s, err
	}
	if pctToSell <= 0 || pctToSell > 100 {
		return s, fmt.Errorf("liquidation of %d%%: %w", pctToSell, ErrInvalidAmount)
	}

	n := s.clone()
	a = n.Assets.touch(key)
	amount := a.Value.percentOf(pct(pctToSell))
	if pctToSell == 100 {
		amount = a.Value
	}
	a.Value = a.Value.Sub(amount)
	a.split()
	n.Assets[key] = a

	cash.Value = cash.Value.Add(amount)
	n.Assets[Cash] = cash

	n.Assets = n.Assets.RecalculatePercentages()
	n.settle()
	n.log(Transaction{Date: on, Kind: KindLiquidate, Asset: key, Description: describeLiquidate(pctToSell, a.Name), Amount: amount})
	return n, nil
}

// RecordProfitLoss books an external gain (positive amount) or loss
// (negative amount) on key. Unlike AdjustValue it is not offset against cash:
// the total capital changes by amount.
func (s *State) RecordProfitLoss(on date.Date, key AssetKey, amount Money) (*State, error) {
	a, err := s.lookup(key)
	if err != nil {
		return s, err
	}
	if amount.IsZero() {
		return s, fmt.Errorf("profit or loss of zero: %w", ErrInvalidAmount)
	}
	if a.Value.Add(amount).IsNegative() {
		return s, fmt.Errorf("%s holds %s, cannot lose %s: %w", a.Name, a.Value, amount.Abs(), ErrInsufficientFunds)
	}

	n := s.clone()
	a = n.Assets.touch(key)
	a.Value = a.Value.Add(amount)
	a.ProfitLoss = a.ProfitLoss.Add(amount)
	a.split()
	n.Assets[key] = a

	n.Assets = n.Assets.RecalculatePercentages()
	n.settle()
	kind := KindProfit
	if amount.IsNegative() {
		kind = KindLoss
	}
	n.log(Transaction{Date: on, Kind: kind, Asset: key, Description: describePnL(kind, a.Name), Amount: amount.Abs()})
	return n, nil
}

// RecordProfitLossPercent is RecordProfitLoss for a gain or loss expressed
// in percent of the current value of key.
func (s *State) RecordProfitLossPercent(on date.Date, key AssetKey, p Percent) (*State, error) {
	a, err := s.lookup(key)
	if err != nil {
		return s, err
	}
	return s.RecordProfitLoss(on, key, a.Value.MulRate(p.Rate()))
}

// Purchase describes a buy of a sub-item. Either UnitPrice or TotalCost may
// be zero, it is then derived from the other one.
type Purchase struct {
	Quantity  Quantity
	UnitPrice Money
	TotalCost Money
}

// normalize fills the missing price field.
func (p Purchase) normalize() (Purchase, error) {
	if !p.Quantity.IsPositive() {
		return p, fmt.Errorf("purchase quantity %s: %w", p.Quantity, ErrInvalidAmount)
	}
	if p.UnitPrice.IsNegative() || p.TotalCost.IsNegative() || (p.UnitPrice.IsZero() && p.TotalCost.IsZero()) {
		return p, fmt.Errorf("purchase needs a positive unit price or total cost: %w", ErrInvalidAmount)
	}
	if p.TotalCost.IsZero() {
		p.TotalCost = p.Quantity.MulPrice(p.UnitPrice)
	}
	if p.UnitPrice.IsZero() {
		p.UnitPrice = p.TotalCost.Div(p.Quantity)
	}
	return p, nil
}

// RecordSubItemPurchase updates the weighted average buy price and the
// quantity of a sub-item and appends a buy to the trade history. The first
// purchase of an unpriced sub-item also sets its current price.
//
// Asset values are not affected: a purchase is bookkeeping of the position.
func (s *State) RecordSubItemPurchase(on date.Date, key AssetKey, idx int, p Purchase) (*State, error) {
	a, err := s.lookupItem(key, idx)
	if err != nil {
		return s, err
	}
	if p, err = p.normalize(); err != nil {
		return s, err
	}

	n := s.clone()
	a = n.Assets.touch(key)
	item := &a.SubItems[idx]
	qty := item.Quantity.Add(p.Quantity)
	item.AverageBuyPrice = item.CostBasis().Add(p.TotalCost).Div(qty)
	item.Quantity = qty
	if item.CurrentPrice.IsZero() {
		item.CurrentPrice = item.AverageBuyPrice
	}
	n.Assets[key] = a

	n.TradeHistory = append(n.TradeHistory, TradeRecord{
		ID:        newTradeID(),
		Date:      on,
		Asset:     key,
		AssetName: a.Name,
		SubItem:   item.Name,
		Type:      Buy,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		TotalCost: p.TotalCost,
	})
	return n, nil
}

// SetSubItemStats overrides the average buy price and quantity of a sub-item
// without recording a trade.
func (s *State) SetSubItemStats(key AssetKey, idx int, avg Money, qty Quantity) (*State, error) {
	if _, err := s.lookupItem(key, idx); err != nil {
		return s, err
	}
	if avg.IsNegative() || qty.IsNegative() {
		return s, fmt.Errorf("average %s, quantity %s: %w", avg, qty, ErrInvalidAmount)
	}

	n := s.clone()
	a := n.Assets.touch(key)
	item := &a.SubItems[idx]
	if item.CurrentPrice.IsZero() {
		item.CurrentPrice = avg
	}
	item.AverageBuyPrice = avg
	item.Quantity = qty
	n.Assets[key] = a
	return n, nil
}

// UpdateCurrentPrice sets the market price of a sub-item.
func (s *State) UpdateCurrentPrice(key AssetKey, idx int, price Money) (*State, error) {
	if _, err := s.lookupItem(key, idx); err != nil {
		return s, err
	}
	if price.IsNegative() {
		return s, fmt.Errorf("price %s: %w", price, ErrInvalidAmount)
	}

	n := s.clone()
	a := n.Assets.touch(key)
	a.SubItems[idx].CurrentPrice = price
	n.Assets[key] = a
	return n, nil
}

// AddSubItem appends a position named name to key and re-splits the asset value.
func (s *State) AddSubItem(key AssetKey, name string) (*State, error) {
	if key == Cash {
		return s, fmt.Errorf("sub-item on cash: %w", ErrForbidden)
	}
	if _, err := s.lookup(key); err != nil {
		return s, err
	}
	if name == "" {
		return s, fmt.Errorf("sub-item of %q: %w", key, ErrInvalidName)
	}

	n := s.clone()
	a := n.Assets.touch(key)
	a.SubItems = append(a.SubItems, SubItem{Name: name})
	if !a.Value.IsZero() {
		a.split()
	}
	n.Assets[key] = a
	return n, nil
}

// RemoveSubItem deletes the sub-item idx of key and re-splits the asset value
// over the remaining ones.
func (s *State) RemoveSubItem(key AssetKey, idx int) (*State, error) {
	if _, err := s.lookupItem(key, idx); err != nil {
		return s, err
	}

	n := s.clone()
	a := n.Assets.touch(key)
	a.SubItems = slices.Delete(a.SubItems, idx, idx+1)
	a.split()
	n.Assets[key] = a
	return n, nil
}

// SaveProjection stores the projection assumptions.
func (s *State) SaveProjection(ps ProjectionSettings) (*State, error) {
	if ps.Years < 1 {
		return s, fmt.Errorf("projection over %d years: %w", ps.Years, ErrInvalidAmount)
	}
	if ps.BaseCapital.IsNegative() || ps.MonthlyContribution.IsNegative() {
		return s, fmt.Errorf("negative projection amounts: %w", ErrInvalidAmount)
	}
	n := s.clone()
	ps.ExpectedReturns = maps.Clone(ps.ExpectedReturns)
	n.Projection = &ps
	return n, nil
}
