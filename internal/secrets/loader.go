// Package secrets resolves API credentials from files or inline values.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret comes from. File wins over Value when both
// are set; the environment variable named by Env wins over File.
type Source struct {
	// Name appears in error messages.
	Name string
	// Value is an inline secret from configuration.
	Value string
	// File points to a file holding the secret.
	File string
	// Env names an environment variable holding a path to the secret file.
	Env string
}

// Load resolves the secret. The result is always trimmed; whitespace-only
// sources count as missing.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if env := strings.TrimSpace(src.Env); env != "" {
		if fromEnv := strings.TrimSpace(os.Getenv(env)); fromEnv != "" {
			file = fromEnv
		}
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
