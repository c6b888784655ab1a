package capital

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		currency string
		m        Money
		want     string
	}{
		{Toman, M(1_234_567), "1,234,567 تومان"},
		{Toman, M(1_234_567.6), "1,234,568 تومان"},
		{Toman, M(-500), "-500 تومان"},
		{"USD", M(1234.5), "$1,234.50"},
	}
	defer func(c string) { DisplayCurrency = c }(DisplayCurrency)
	for _, tt := range tests {
		DisplayCurrency = tt.currency
		if got := tt.m.String(); got != tt.want {
			t.Errorf("M(%v).String() = %q, want %q", tt.m.Decimal(), got, tt.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got := M(0).SignedString(); got != "-" {
		t.Errorf("M(0).SignedString() = %q, want %q", got, "-")
	}
	if got := M(10).SignedString(); got != "+10 تومان" {
		t.Errorf("M(10).SignedString() = %q, want %q", got, "+10 تومان")
	}
}

func TestMoney_JSON(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{`1500`, M(1500)},
		{`"12.25"`, M(12.25)},
		{`null`, M(0)},
	}
	for _, tt := range tests {
		var got Money
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, got.Decimal(), tt.want.Decimal())
		}
	}

	data, err := json.Marshal(M(49691.375))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "49691.375" {
		t.Errorf("Marshal() = %s, want 49691.375", data)
	}
}

func TestSubItem_JSON(t *testing.T) {
	item := SubItem{Name: "Bitcoin", Value: M(100)}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"name":"Bitcoin","value":100}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var got SubItem
	if err := json.Unmarshal([]byte(`{"name":"Bitcoin","value":100,"quantity":0.5,"averageBuyPrice":60000,"currentPrice":0}`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Quantity.Equal(Q(0.5)) || !got.CostBasis().Equal(M(30_000)) {
		t.Errorf("Unmarshal() = %+v, want half a bitcoin at 60000", got)
	}
	if !got.UnrealizedPnL().IsZero() {
		t.Errorf("UnrealizedPnL() = %v, want 0 without a current price", got.UnrealizedPnL().Decimal())
	}
}
