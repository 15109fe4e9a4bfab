// Package config loads and validates application settings: logging,
// the rank order for applicability rules, schedule date arithmetic, and
// the propagation policy. Sources layer YAML file, .env file, then
// process environment, highest last.
package config
