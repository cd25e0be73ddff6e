// Package model defines the core data structures used throughout prospectscan.
//
// This package contains the following main types:
//   - Envelope: The outer success/error wrapper of a discovery document
//   - Result: The decoded discovery payload (entities plus data quality)
//   - Entity: One discovered company with its score and signals
//   - Signal: One discovery signal with confidence and provenance
//   - Summary: The aggregated view rendered in the report summary section
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (report, history, schema, cmd) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage. Decoded fields keep the enrichment API wire keys;
// computed types use snake_case tags.
package model
