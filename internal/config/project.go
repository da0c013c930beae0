package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
)

// ProjectFileName is the project configuration file searched for from the working directory
const ProjectFileName = "oracle.toml"

// loadEnvFiles loads .env files from the project root for variable expansion.
// Variables already present in the environment are not overridden.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				slog.Warn("failed to load env file", "file", envFile, "error", err)
			}
		}
	}
}

// loadProjectConfig loads and parses oracle.toml
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	projectPath := filepath.Join(projectRoot, ProjectFileName)
	var cfg config.ProjectConfig

	if _, err := os.Stat(projectPath); os.IsNotExist(err) {
		// Only reachable from init, which runs outside a project
		applyProjectDefaults(&cfg)
		return &cfg, nil
	}

	md, err := toml.DecodeFile(projectPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("unknown keys in project config", "file", ProjectFileName, "keys", strings.Join(keys, ", "))
	}

	applyProjectDefaults(&cfg)

	return &cfg, nil
}

// applyProjectDefaults fills unset paths and maps
func applyProjectDefaults(cfg *config.ProjectConfig) {
	if cfg.OutputFile == "" {
		cfg.OutputFile = config.DefaultOutputFile
	}
	if cfg.ConstantsFile == "" {
		cfg.ConstantsFile = config.DefaultConstantsFile
	}
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = config.DefaultArtifactsDir
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.Etherscan == nil {
		cfg.Etherscan = make(map[string]config.EtherscanConfig)
	}
}

// resolvePath makes a configured path absolute relative to the project root
func resolvePath(projectRoot, path string) string {
	path = os.ExpandEnv(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}
