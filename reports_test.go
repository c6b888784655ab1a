package capital

import (
	"testing"
	"time"

	"github.com/etnz/capital/date"
)

func TestNewAllocationReport(t *testing.T) {
	s := initialized(t)
	s = must(t)(s.AdjustValue(day, Gold, M(220_000)))

	r := NewAllocationReport(s)
	if len(r.Rows) != len(CanonicalKeys) {
		t.Fatalf("len(Rows) = %d, want %d", len(r.Rows), len(CanonicalKeys))
	}
	for i, key := range CanonicalKeys {
		if r.Rows[i].Key != key {
			t.Errorf("Rows[%d].Key = %s, want %s", i, r.Rows[i].Key, key)
		}
	}
	gold := r.Rows[0]
	if !gold.Return.Equal(10) {
		t.Errorf("gold return = %v, want 10%%", gold.Return)
	}
	if !r.TotalProfitLoss.Equal(M(20_000)) {
		t.Errorf("TotalProfitLoss = %v, want 20000", r.TotalProfitLoss.Decimal())
	}
}

func TestNewItemsReport(t *testing.T) {
	s := initialized(t)
	s = must(t)(s.SetSubItemStats(Crypto, 0, M(10), Q(2)))
	s = must(t)(s.UpdateCurrentPrice(Crypto, 0, M(12)))

	tests := []struct {
		name        string
		key         AssetKey
		usdt        Money
		wantAvg     Money
		wantPnL     Money
		wantConvert bool
	}{
		{"raw", Crypto, M(0), M(10), M(4), false},
		{"converted", Crypto, M(60_000), M(600_000), M(240_000), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewItemsReport(s, tt.key, tt.usdt)
			if err != nil {
				t.Fatalf("NewItemsReport() error = %v", err)
			}
			if r.Converted != tt.wantConvert {
				t.Errorf("Converted = %v, want %v", r.Converted, tt.wantConvert)
			}
			row := r.Rows[0]
			if !row.AverageBuyPrice.Equal(tt.wantAvg) {
				t.Errorf("AverageBuyPrice = %v, want %v", row.AverageBuyPrice.Decimal(), tt.wantAvg.Decimal())
			}
			if !r.PnL.Equal(tt.wantPnL) {
				t.Errorf("PnL = %v, want %v", r.PnL.Decimal(), tt.wantPnL.Decimal())
			}
		})
	}

	// the conversion never leaks into the state
	if got := s.Assets[Crypto].SubItems[0].AverageBuyPrice; !got.Equal(M(10)) {
		t.Errorf("stored AverageBuyPrice = %v, want 10", got.Decimal())
	}
	// gold is priced in the portfolio unit
	if r, _ := NewItemsReport(s, Gold, M(60_000)); r.Converted {
		t.Error("gold prices have been converted")
	}
	if _, err := NewItemsReport(s, "bonds", M(0)); err == nil {
		t.Error("NewItemsReport() on an unknown asset succeeded")
	}
}

func TestNewTrendReport(t *testing.T) {
	s := initialized(t)
	s = must(t)(s.AddCapital(day, M(1_000_000)))
	s = must(t)(s.RecordProfitLoss(day, Gold, M(50_000)))
	s = must(t)(s.Liquidate(day, Gold, 50))
	s = must(t)(s.RecordProfitLoss(day, Stock, M(-10_000)))

	want := []Money{M(1_000_000), M(2_000_000), M(2_050_000), M(2_050_000), M(2_040_000)}
	got := NewTrendReport(s)
	if len(got) != len(want) {
		t.Fatalf("len(NewTrendReport()) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if !got[i].Capital.Equal(w) {
			t.Errorf("point %d (%s) = %v, want %v", i, got[i].Kind, got[i].Capital.Decimal(), w.Decimal())
		}
	}
	if last := got[len(got)-1]; !last.Capital.Equal(s.TotalCapital) {
		t.Errorf("last point = %v, want the total capital %v", last.Capital.Decimal(), s.TotalCapital.Decimal())
	}
}

func TestNewMonthlyPnLReport(t *testing.T) {
	jan := date.New(2025, time.January, 10)
	feb := date.New(2025, time.February, 3)
	s := must(t)(NewState().SetInitialCapital(jan, M(1_000_000)))
	s = must(t)(s.RecordProfitLoss(feb, Gold, M(30_000)))
	s = must(t)(s.RecordProfitLoss(jan, Gold, M(10_000)))
	s = must(t)(s.RecordProfitLoss(feb, Crypto, M(-5_000)))

	got := NewMonthlyPnLReport(s)
	if len(got) != 2 {
		t.Fatalf("len(NewMonthlyPnLReport()) = %d, want 2", len(got))
	}
	if got[0].Month != "2025-01" || !got[0].Total.Equal(M(10_000)) {
		t.Errorf("first month = %s %v, want 2025-01 10000", got[0].Month, got[0].Total.Decimal())
	}
	if got[1].Month != "2025-02" || !got[1].Total.Equal(M(25_000)) {
		t.Errorf("second month = %s %v, want 2025-02 25000", got[1].Month, got[1].Total.Decimal())
	}
	if v := got[1].ByAsset[Crypto]; !v.Equal(M(-5_000)) {
		t.Errorf("crypto in February = %v, want -5000", v.Decimal())
	}
}

func TestFilterTransactions(t *testing.T) {
	jan := date.New(2025, time.January, 10)
	feb := date.New(2025, time.February, 3)
	s := must(t)(NewState().SetInitialCapital(jan, M(1_000_000)))
	s = must(t)(s.RecordProfitLoss(feb, Gold, M(30_000)))
	s = must(t)(s.RecordProfitLoss(feb, Crypto, M(30_000)))

	if got := FilterTransactions(s, date.NewRange(feb, date.Monthly), ""); len(got) != 2 {
		t.Errorf("February transactions = %d, want 2", len(got))
	}
	if got := FilterTransactions(s, date.Range{}, Gold); len(got) != 1 {
		t.Errorf("gold transactions = %d, want 1", len(got))
	}
}
