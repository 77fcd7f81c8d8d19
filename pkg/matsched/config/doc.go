// Package config loads breakdown catalogs and annotation defaults from
// YAML files, or TOML files when the path ends in .toml.
package config
