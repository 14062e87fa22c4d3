// Package config loads, normalizes, and validates Sift configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SIFT_LLM_API_KEY. The Config type centralizes every knob the daemon and CLI
// need, from the watched inbox directory to classifier credentials.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical extension sets, and clear validation errors.
package config
