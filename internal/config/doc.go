// Package config loads, normalizes, and validates apmeta configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides for the
// reference datasets (APMETA_ARTISTS_CSV, APMETA_CYCLES_XML). The Config type
// centralizes every knob the define, verify, and inspect commands need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
