package config

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// envPattern matches ${NAME} and ${NAME:-fallback}.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// Load reads a YAML file into out after substituting environment variables.
func Load(filePath string, out interface{}) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeFile, "failed to read config file").
			WithDetail("path", filePath)
	}

	if err := yaml.Unmarshal(substituteEnvVars(data), out); err != nil {
		return nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeConfig, "failed to parse YAML").
			WithDetail("path", filePath)
	}
	return nil
}

// Save writes v to filePath as YAML.
func Save(filePath string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeConfig, "failed to marshal YAML")
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeFile, "failed to write config file").
			WithDetail("path", filePath)
	}
	return nil
}

// substituteEnvVars replaces ${NAME} with the variable's value. An unset
// variable becomes its fallback, or the empty string when none is given.
func substituteEnvVars(content []byte) []byte {
	return envPattern.ReplaceAllFunc(content, func(m []byte) []byte {
		groups := envPattern.FindSubmatch(m)
		if v, ok := os.LookupEnv(string(groups[1])); ok {
			return []byte(v)
		}
		return groups[2]
	})
}
