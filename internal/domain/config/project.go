package config

// Default locations relative to the project root
const (
	DefaultOutputFile    = "scripts/output/Oracle.json"
	DefaultConstantsFile = "scripts/constants/sources.json"
	DefaultArtifactsDir  = "artifacts"
)

// ProjectConfig represents the full oracle.toml configuration
type ProjectConfig struct {
	DefaultNetwork   string                     `toml:"default_network,omitempty"`
	OutputFile       string                     `toml:"output_file,omitempty"`
	ConstantsFile    string                     `toml:"constants_file,omitempty"`
	ArtifactsDir     string                     `toml:"artifacts_dir,omitempty"`
	DuplicateSources string                     `toml:"duplicate_sources,omitempty"`
	Networks         map[string]NetworkConfig   `toml:"networks"`
	Etherscan        map[string]EtherscanConfig `toml:"etherscan,omitempty"`
}

// NetworkConfig is a network entry as written in oracle.toml.
// String values may reference environment variables as ${VAR}.
type NetworkConfig struct {
	URL           string  `toml:"url"`
	ChainID       uint64  `toml:"chain_id"`
	PrivateKey    string  `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	GasPrice      string  `toml:"gas_price,omitempty"`   // "auto" or wei
	Gas           string  `toml:"gas,omitempty"`         // "auto" or gas limit
	GasMultiplier float64 `toml:"gas_multiplier,omitempty"`
}

// EtherscanConfig represents block explorer configuration for a network
type EtherscanConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	APIURL     string `toml:"api_url,omitempty"`
	BrowserURL string `toml:"browser_url,omitempty"`
}
