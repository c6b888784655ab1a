package capital

import (
	"maps"
	"slices"
)

// State is the whole application document: the portfolio and its logs.
//
// A State is a snapshot. Operations never modify their receiver, they return
// a new State sharing whatever they did not touch.
type State struct {
	Initialized  bool                `json:"isInitialized"`
	TotalCapital Money               `json:"totalCapital"`
	Assets       Assets              `json:"assets"`
	Transactions []Transaction       `json:"transactions"`
	TradeHistory []TradeRecord       `json:"tradeHistory"`
	Projection   *ProjectionSettings `json:"projectionSettings,omitempty"`
}

// ProjectionSettings holds the user assumptions of the growth projection.
type ProjectionSettings struct {
	BaseCapital         Money                `json:"baseCapital"` // zero means current total capital
	Years               int                  `json:"years"`
	MonthlyContribution Money                `json:"monthlyContribution"`
	AnnualIncrease      Percent              `json:"annualIncrease"` // yearly growth of the contribution
	ExpectedReturns     map[AssetKey]Percent `json:"expectedReturns"`
}

// DefaultProjectionSettings returns the built-in projection assumptions.
func DefaultProjectionSettings() ProjectionSettings {
	return ProjectionSettings{
		BaseCapital:         M(0),
		Years:               5,
		MonthlyContribution: M(0),
		AnnualIncrease:      20,
		ExpectedReturns: map[AssetKey]Percent{
			Gold:         35,
			Stock:        30,
			ForeignStock: 25,
			Crypto:       50,
			Cash:         15,
		},
	}
}

// items creates zero valued sub-items.
func items(names ...string) []SubItem {
	res := make([]SubItem, 0, len(names))
	for _, name := range names {
		res = append(res, SubItem{Name: name})
	}
	return res
}

// defaultAssets returns the onboarding allocation: 20% in each class.
func defaultAssets() Assets {
	return Assets{
		Gold:         {Name: "Gold", Percentage: 20, SubItems: items("Emami coin", "Melted gold", "Gold bullion", "Half coin")},
		Stock:        {Name: "Iran stock", Percentage: 20, SubItems: items("FMLI", "FOLD", "SHPNA", "VBSADER")},
		ForeignStock: {Name: "Foreign stock", Percentage: 20, SubItems: items("Apple", "Tesla", "Amazon", "Microsoft")},
		Crypto:       {Name: "Crypto", Percentage: 20, SubItems: items("Bitcoin", "Ethereum", "Tether", "Solana")},
		Cash:         {Name: "Cash", Percentage: 20, SubItems: []SubItem{}},
	}
}

// NewState returns a fresh, uninitialized state with the default allocation.
func NewState() *State {
	ps := DefaultProjectionSettings()
	return &State{
		Assets:       defaultAssets(),
		Transactions: []Transaction{},
		TradeHistory: []TradeRecord{},
		Projection:   &ps,
	}
}

// Asset returns the asset under key.
func (s *State) Asset(key AssetKey) (Asset, bool) {
	a, ok := s.Assets[key]
	return a, ok
}

// ProjectionSettings returns the saved settings, or the defaults.
func (s *State) ProjectionSettings() ProjectionSettings {
	if s.Projection == nil {
		return DefaultProjectionSettings()
	}
	ps := *s.Projection
	ps.ExpectedReturns = maps.Clone(ps.ExpectedReturns)
	return ps
}

// clone returns a shallow copy of s whose asset map can be modified. Logs are
// clipped so that appending to them never writes into s.
func (s *State) clone() *State {
	n := *s
	n.Assets = s.Assets.clone()
	n.Transactions = slices.Clip(s.Transactions)
	n.TradeHistory = slices.Clip(s.TradeHistory)
	return &n
}

// settle recomputes the total capital from the asset values.
func (s *State) settle() {
	s.TotalCapital = s.Assets.Total()
}

// log appends a transaction.
func (s *State) log(tx Transaction) {
	s.Transactions = append(s.Transactions, tx)
}
