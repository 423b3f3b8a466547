package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zalando/go-keyring"
)

func TestGetKeyFromEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv("GEMINI_API_KEY", "  env-key  ")

	key, source := GetKey(true)
	assert.Equal(t, "env-key", key)
	assert.Equal(t, "Environment Variable", source)
}

func TestGetKeyEnvDisallowed(t *testing.T) {
	keyring.MockInit()
	t.Setenv("GEMINI_API_KEY", "env-key")

	key, source := GetKey(false)
	assert.Empty(t, key)
	assert.Empty(t, source)
}

func TestKeychainPreferredOverEnv(t *testing.T) {
	keyring.MockInit()
	t.Setenv("GEMINI_API_KEY", "env-key")
	assert.NoError(t, SaveKey("stored-key"))

	key, source := GetKey(true)
	assert.Equal(t, "stored-key", key)
	assert.Equal(t, "Keychain", source)
}

func TestSaveDeleteRoundTrip(t *testing.T) {
	keyring.MockInit()

	assert.False(t, HasStoredKey())
	assert.NoError(t, SaveKey(" k1 "))
	assert.True(t, HasStoredKey())

	key, _ := GetKey(false)
	assert.Equal(t, "k1", key)

	assert.NoError(t, DeleteKey())
	assert.False(t, HasStoredKey())
}
