// Package exposure computes per instrument risk and currency exposure
// indicators from daily portfolio holdings, for portfolio risk reporting.
//
// The computation is a single batch transform in four stages:
//   - Derive: the duration and currency exposures of each holding.
//   - Aggregate: holdings reduced to one InstrumentGroup per (date, portfolio
//     group, portfolio code, instrument type code, instrument id).
//   - Weigh: weights relative to the portfolio AUM, and the raw contribution
//     of each risk Measure, driven by the duration exposure weight.
//   - Normalize: contributions divided by the total of their portfolio group
//     on that date, so that they sum to 1 within each partition.
//
// Compute chains the stages; Pipeline.Run also returns the intermediate
// tables. Degenerate data never fails the computation: a ratio that is not a
// number (0/0, missing operand) is reported as 0, while a non zero value over
// a zero denominator is passed through as an infinity. Inspect lists those
// values for downstream consumers.
//
// Holdings are read from CSV or JSONL and rows written to CSV, JSONL or
// MessagePack, see DecodeHoldings and EncodeRows. This package serves as the
// foundational logic for the `rcx` command-line tool.
package exposure
