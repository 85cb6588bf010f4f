package config

import _ "embed"

// DefaultConfigYAML built-in defaults, overridden by an external file and FINTRACK_ env vars
//
//go:embed default.yaml
var DefaultConfigYAML []byte
