// Package log provides logging with automatic redaction of enrichment API
// credentials, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic redaction of credential-bearing attributes (tokens, API keys)
//   - Scrubbing of secrets embedded in logged source URLs
//   - Configurable log levels with verbose mode support
//
// # Redaction
//
// Discovery documents are produced by an enrichment API, and the signal
// sources they carry are often URLs with access credentials in the query
// string (api_key, token, sig). The RedactHandler masks those before any
// record reaches the underlying handler, so debug logging a document's
// sources never leaks an upstream credential into a shared log file.
//
// # Usage
//
//	// Create a logger that redacts credentials
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("signal source",
//	    "source", "https://api.example.com/v2/news?api_key=abc123", // key is masked
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
