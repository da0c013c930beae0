package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/trebuchet-org/oracle-deployer/internal/domain"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		// Try to find project root
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	projectConfig, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	policyName := v.GetString("duplicates")
	if policyName == "" {
		policyName = projectConfig.DuplicateSources
	}
	policy, err := domain.ParseDuplicatePolicy(policyName)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:     projectRoot,
		OutputFile:      resolvePath(projectRoot, projectConfig.OutputFile),
		ConstantsFile:   resolvePath(projectRoot, projectConfig.ConstantsFile),
		ArtifactsDir:    resolvePath(projectRoot, projectConfig.ArtifactsDir),
		Debug:           v.GetBool("debug"),
		NonInteractive:  v.GetBool("non_interactive"),
		Timeout:         v.GetDuration("timeout"),
		DuplicatePolicy: policy,
		ProjectConfig:   projectConfig,
	}

	// Resolve network: flag/env first, then the project default, then the only one configured
	networkName := v.GetString("network")
	if networkName == "" {
		networkName = projectConfig.DefaultNetwork
	}
	if networkName == "" && len(projectConfig.Networks) == 1 {
		networkName = NewNetworkResolver(projectConfig).Names()[0]
	}
	if networkName != "" {
		network, err := NewNetworkResolver(projectConfig).Resolve(networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find oracle.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		projectFile := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(projectFile); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding oracle.toml
			return "", fmt.Errorf("not in an oracle deployment project (%s not found)", ProjectFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("ORACLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectConfig)
}

// NetworkChoices returns the configured network names and the project default
func NetworkChoices(projectRoot string) (names []string, defaultNetwork string, err error) {
	projectConfig, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, "", err
	}
	return NewNetworkResolver(projectConfig).Names(), projectConfig.DefaultNetwork, nil
}
