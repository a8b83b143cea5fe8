package config

import "time"

// Timeout constants used across cmd.
const (
	RPCSelectTimeout = 10 * time.Second // RPC benchmark / selection
	ConnectTimeout   = 2 * time.Minute  // wallet approval prompts included
	ReadTimeout      = 30 * time.Second // contract reads
	TxConfirmTimeout = 3 * time.Minute  // default transaction confirmation wait
)

// Environment variables.
const (
	EnvPrefix = "TMB"
	EnvDir    = "TMB_CONFIG_DIR"
)
