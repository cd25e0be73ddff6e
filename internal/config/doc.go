// Package config provides configuration management for prospectscan.
// It handles command-line flags, configuration files, and default values
// for controlling how discovery documents are rendered and stored.
package config
