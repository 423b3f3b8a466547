// Package auth resolves the Gemini API key used for wallpaper generation.
// The OS keychain is the primary store; the environment variable is a
// fallback for headless setups.
package auth

import (
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName   = "mugen"
	geminiAccount = "gemini-api-key"
	geminiEnvVar  = "GEMINI_API_KEY"
)

// GetKey retrieves the Gemini API key and where it came from.
// If allowEnv is false, the environment variable is ignored.
func GetKey(allowEnv bool) (string, string) {
	key, err := keyring.Get(serviceName, geminiAccount)
	if err == nil && key != "" {
		return strings.TrimSpace(key), "Keychain"
	}

	if allowEnv {
		if key = os.Getenv(geminiEnvVar); key != "" {
			return strings.TrimSpace(key), "Environment Variable"
		}
	}

	return "", ""
}

// SaveKey stores the key in the OS keychain.
func SaveKey(key string) error {
	return keyring.Set(serviceName, geminiAccount, strings.TrimSpace(key))
}

// DeleteKey removes the key from the OS keychain.
func DeleteKey() error {
	return keyring.Delete(serviceName, geminiAccount)
}

// HasStoredKey reports whether a key exists in the keychain.
func HasStoredKey() bool {
	key, err := keyring.Get(serviceName, geminiAccount)
	return err == nil && key != ""
}
