package capital

import (
	"slices"
	"strings"

	"github.com/etnz/capital/date"
)

// AllocationReport is the dashboard view of the portfolio.
type AllocationReport struct {
	Initialized     bool
	TotalCapital    Money
	TotalProfitLoss Money
	Rows            []AllocationRow
}

// AllocationRow is one asset of an AllocationReport.
type AllocationRow struct {
	Key          AssetKey
	Name         string
	Percentage   int
	Value        Money
	InitialValue Money
	ProfitLoss   Money
	Return       Percent
	Items        int
}

// NewAllocationReport lists assets in canonical order.
func NewAllocationReport(s *State) *AllocationReport {
	r := &AllocationReport{
		Initialized:     s.Initialized,
		TotalCapital:    s.TotalCapital,
		TotalProfitLoss: M(0),
	}
	for _, key := range s.Assets.Keys() {
		a := s.Assets[key]
		r.TotalProfitLoss = r.TotalProfitLoss.Add(a.ProfitLoss)
		r.Rows = append(r.Rows, AllocationRow{
			Key:          key,
			Name:         a.Name,
			Percentage:   a.Percentage,
			Value:        a.Value,
			InitialValue: a.InitialValue,
			ProfitLoss:   a.ProfitLoss,
			Return:       a.Return(),
			Items:        len(a.SubItems),
		})
	}
	return r
}

// ItemsReport details the sub-items of an asset.
//
// When USDT is set, prices of crypto and foreign stock items are read as
// Tether prices and converted with it. The conversion is a display matter,
// the state always keeps the prices as entered.
type ItemsReport struct {
	Key       AssetKey
	Name      string
	Value     Money
	USDT      Money
	Converted bool
	Rows      []ItemRow
	Cost      Money // total cost basis
	Market    Money // total market value
	PnL       Money // total unrealized profit and loss
}

// ItemRow is one sub-item of an ItemsReport.
type ItemRow struct {
	Index           int
	Name            string
	Value           Money
	Quantity        Quantity
	AverageBuyPrice Money
	CurrentPrice    Money
	CostBasis       Money
	MarketValue     Money
	UnrealizedPnL   Money
}

// usdtPriced reports whether the prices of key are entered in Tether.
func usdtPriced(key AssetKey) bool {
	return key == Crypto || key == ForeignStock
}

// NewItemsReport builds the positions of asset key. usdt is the price of one
// Tether, zero disables the conversion.
func NewItemsReport(s *State, key AssetKey, usdt Money) (*ItemsReport, error) {
	a, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	r := &ItemsReport{
		Key:       key,
		Name:      a.Name,
		Value:     a.Value,
		USDT:      usdt,
		Converted: usdt.IsPositive() && usdtPriced(key),
		Cost:      M(0),
		Market:    M(0),
		PnL:       M(0),
	}
	for i, item := range a.SubItems {
		if r.Converted {
			rate := Q(usdt.value)
			item.AverageBuyPrice = item.AverageBuyPrice.Mul(rate)
			item.CurrentPrice = item.CurrentPrice.Mul(rate)
		}
		row := ItemRow{
			Index:           i,
			Name:            item.Name,
			Value:           item.Value,
			Quantity:        item.Quantity,
			AverageBuyPrice: item.AverageBuyPrice,
			CurrentPrice:    item.CurrentPrice,
			CostBasis:       item.CostBasis(),
			MarketValue:     item.MarketValue(),
			UnrealizedPnL:   item.UnrealizedPnL(),
		}
		r.Cost = r.Cost.Add(row.CostBasis)
		r.Market = r.Market.Add(row.MarketValue)
		r.PnL = r.PnL.Add(row.UnrealizedPnL)
		r.Rows = append(r.Rows, row)
	}
	return r, nil
}

// TrendPoint is the capital right after a transaction.
type TrendPoint struct {
	Date        date.Date
	Kind        TxKind
	Description string
	Flow        Money
	Capital     Money
}

// NewTrendReport replays the transaction log and returns the cumulated
// capital after each entry. Entries are classified by kind, internal moves
// keep the capital flat.
func NewTrendReport(s *State) []TrendPoint {
	capital := M(0)
	res := make([]TrendPoint, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		flow := tx.Flow()
		capital = capital.Add(flow)
		res = append(res, TrendPoint{
			Date:        tx.Date,
			Kind:        tx.Kind,
			Description: tx.Description,
			Flow:        flow,
			Capital:     capital,
		})
	}
	return res
}

// MonthlyPnL is the net profit and loss booked during a month.
type MonthlyPnL struct {
	Month   string // YYYY-MM
	ByAsset map[AssetKey]Money
	Total   Money
}

// NewMonthlyPnLReport aggregates profit and loss transactions per month and
// per asset, in chronological order.
func NewMonthlyPnLReport(s *State) []MonthlyPnL {
	index := make(map[string]int)
	var res []MonthlyPnL
	for _, tx := range s.Transactions {
		if tx.Kind != KindProfit && tx.Kind != KindLoss {
			continue
		}
		month := tx.Date.MonthKey()
		i, ok := index[month]
		if !ok {
			i = len(res)
			index[month] = i
			res = append(res, MonthlyPnL{Month: month, ByAsset: make(map[AssetKey]Money), Total: M(0)})
		}
		m := &res[i]
		m.ByAsset[tx.Asset] = m.ByAsset[tx.Asset].Add(tx.Flow())
		m.Total = m.Total.Add(tx.Flow())
	}
	slices.SortStableFunc(res, func(a, b MonthlyPnL) int { return strings.Compare(a.Month, b.Month) })
	return res
}

// FilterTransactions returns the transactions within r, optionally limited to
// one asset.
func FilterTransactions(s *State, r date.Range, key AssetKey) []Transaction {
	var res []Transaction
	for _, tx := range s.Transactions {
		if !r.Contains(tx.Date) {
			continue
		}
		if key != "" && tx.Asset != key {
			continue
		}
		res = append(res, tx)
	}
	return res
}

// FilterTrades returns the trades within r, optionally limited to one asset.
func FilterTrades(s *State, r date.Range, key AssetKey) []TradeRecord {
	var res []TradeRecord
	for _, t := range s.TradeHistory {
		if !r.Contains(t.Date) {
			continue
		}
		if key != "" && t.Asset != key {
			continue
		}
		res = append(res, t)
	}
	return res
}
