// Package config loads, normalizes, and validates speakersplit configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML from --config, ~/.config/speakersplit/config.toml,
// or ./speakersplit.toml. Config.Dialect turns the [annotation] section into a
// timeline.Dialect so the CLI and tests share one parser setup.
package config
