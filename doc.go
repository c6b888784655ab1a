// Package capital implements the allocation engine and the growth projection
// behind a personal capital tracker.
//
// A single user records a total capital amount and spreads it across a few
// asset classes (gold, domestic stock, foreign stock, crypto and cash). Each
// class may hold named positions, with a quantity, an average buy price and a
// current market price.
//
// The core functionalities include:
//   - State Engine: pure transformations of a [State] snapshot (capital
//     injection, percentage rebalancing, manual valuation, liquidation,
//     profit/loss recording, purchase averaging). Every operation returns a
//     new snapshot and leaves its receiver untouched. Cash is the balancing
//     buffer: it absorbs whatever value is not explicitly allocated elsewhere.
//   - Growth Projection: a deterministic month by month compounding of the
//     current allocation, with a yearly escalating contribution.
//   - Reports: read-only views (allocation, positions valuation, capital
//     trend, monthly profit and loss) for the rendering layer.
//   - Persistence format: the whole state is a single JSON document, with a
//     small backfill migration for documents written by older versions.
//
// The engine is synchronous and holds no lock: callers serialize mutations by
// always applying the next operation to the latest snapshot.
package capital
