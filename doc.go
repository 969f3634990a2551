// Package folio turns a hand-maintained ledger of stock transactions
// into dense daily time series of valuation and profit per holding.
//
// The pipeline has three sequential stages: DecodeLedger reads the
// YAML transaction document, Normalize resolves effective prices and
// running aggregates, and Reconstruct expands them onto a gap-free
// calendar grid joined with market close prices. Missing market data
// (weekends, gaps, delistings) is carried as a first-class
// "unavailable" marker that propagates through arithmetic, never as a
// zero or a stale value.
package folio
