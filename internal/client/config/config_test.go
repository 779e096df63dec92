package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8080", c.ServerURL)
}

func TestLoadConfig_FlagOverridesDefault(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-s", "https://vault.example.com"}

	c := LoadConfig()
	assert.Equal(t, "https://vault.example.com", c.ServerURL)
}
