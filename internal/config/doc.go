// Package config loads, normalizes, and validates hamremix configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HAMREMIX_VIDEO and HF_TOKEN. The Config type centralizes every knob the CLI
// and pipeline need, so source media, dialogue scripts, output directories,
// and external tool settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
