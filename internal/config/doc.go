// Package config loads, normalizes, and validates seekbar configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from the standard location or an explicit
// override. The Config type centralizes every knob the daemon and CLI need:
// log routing, the HTTP API bind and token, the page bridge switch, and the
// playback command step sizes.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
