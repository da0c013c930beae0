package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// expandValue expands environment variables in a raw config value.
// When the value is a pure ${VAR} reference to an unset or empty variable,
// the variable name is returned so callers can report it.
func expandValue(rawValue string) (value string, missingVar string) {
	if name, ok := DetectEnvVar(strings.TrimSpace(rawValue)); ok {
		v := os.Getenv(name)
		if v == "" {
			return "", name
		}
		return v, ""
	}
	return os.ExpandEnv(rawValue), ""
}

// GenerateEnvVarName generates a conventional env var name for a network's private key.
// Convention: uppercase, dashes/dots to underscores, append _PRIVATE_KEY.
// Examples: beraBartio -> BERABARTIO_PRIVATE_KEY, bera-bartio -> BERA_BARTIO_PRIVATE_KEY
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_PRIVATE_KEY"
}
