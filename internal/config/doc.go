// Package config loads the server settings from defaults, an optional
// config.yaml and WODLOG_-prefixed environment variables, then validates
// them before any component starts.
package config
