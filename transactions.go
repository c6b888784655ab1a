package capital

import (
	"fmt"

	"github.com/etnz/capital/date"
	"github.com/google/uuid"
)

// TxKind classifies a transaction.
type TxKind string

// Transaction kinds.
const (
	KindInitial   TxKind = "initial"   // initial capital deposit
	KindDeposit   TxKind = "deposit"   // capital injection
	KindAdjust    TxKind = "adjust"    // manual revaluation of an asset
	KindLiquidate TxKind = "liquidate" // asset value moved to cash
	KindProfit    TxKind = "profit"    // external gain
	KindLoss      TxKind = "loss"      // external loss
)

// Transaction is an immutable entry of the capital log.
//
// Asset holds the key of the asset the transaction is about. It is empty for
// portfolio-wide transactions (initial capital, deposits).
type Transaction struct {
	Date        date.Date `json:"date"`
	Kind        TxKind    `json:"kind,omitempty"`
	Asset       AssetKey  `json:"asset,omitempty"`
	Description string    `json:"description"`
	Amount      Money     `json:"amount"`
}

// Flow returns the signed effect of the transaction on the total capital.
// Internal moves (adjustments, liquidations) have no effect.
func (t Transaction) Flow() Money {
	switch t.Kind {
	case KindInitial, KindDeposit, KindProfit:
		return t.Amount
	case KindLoss:
		return t.Amount.Neg()
	default:
		return M(0)
	}
}

// TradeType is the side of a trade.
type TradeType string

const (
	Buy  TradeType = "buy"
	Sell TradeType = "sell"
)

// TradeRecord is an immutable entry of the trade ledger.
type TradeRecord struct {
	ID        string    `json:"id"`
	Date      date.Date `json:"date"`
	Asset     AssetKey  `json:"asset,omitempty"`
	AssetName string    `json:"assetName"`
	SubItem   string    `json:"subItemName"`
	Type      TradeType `json:"type"`
	Quantity  Quantity  `json:"quantity"`
	UnitPrice Money     `json:"unitPrice"`
	TotalCost Money     `json:"totalCost"`
}

// newTradeID generates trade record identifiers.
var newTradeID = uuid.NewString

// descriptions of transactions, resolved from the asset display name when
// the transaction is recorded.
const (
	descInitial = "Initial capital"
	descDeposit = "Capital increase"
)

func describeAdjust(name string) string {
	return fmt.Sprintf("Manual adjustment of %s", name)
}

func describeLiquidate(pct int, name string) string {
	return fmt.Sprintf("Liquidated %d%% of %s", pct, name)
}

func describePnL(kind TxKind, name string) string {
	if kind == KindLoss {
		return fmt.Sprintf("Loss on %s", name)
	}
	return fmt.Sprintf("Profit on %s", name)
}
