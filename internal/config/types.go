package config

// Config holds all tmbcli configuration.
type Config struct {
	Provider        string              `json:"provider"         mapstructure:"provider"` // "keystore" | "remote"
	WalletURL       string              `json:"wallet_url"       mapstructure:"wallet_url"`
	DefaultWallet   string              `json:"default_wallet"   mapstructure:"default_wallet"`
	ContractAddress string              `json:"contract_address" mapstructure:"contract_address"`
	RPCAlgorithm    string              `json:"rpc_algorithm"    mapstructure:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	CustomRPCs      map[string][]string `json:"custom_rpcs"      mapstructure:"custom_rpcs"`
	LogLevel        string              `json:"log_level"        mapstructure:"log_level"`
	LogPath         string              `json:"log_path"         mapstructure:"log_path"`
	TxTimeout       int                 `json:"tx_timeout"       mapstructure:"tx_timeout"` // seconds
	MetricsAddr     string              `json:"metrics_addr"     mapstructure:"metrics_addr"`

	// internal: config dir path used for Save()
	configDir string
}

// Provider kinds.
const (
	ProviderKeystore = "keystore"
	ProviderRemote   = "remote"
)
