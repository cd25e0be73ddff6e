// Package main provides the entry point for the prospectscan CLI.
//
// Prospectscan renders discovery documents produced by the company
// enrichment API as prospect reports for the Employee Banking UAE team.
//
// Usage:
//
//	prospectscan render <discovery-document>
//	prospectscan render < discovery.json
//
// See --help for all available options.
package main

// main is the entry point for prospectscan.
func main() {
	Execute()
}
