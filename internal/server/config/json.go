package config

import (
	"encoding/json"
	"os"

	"github.com/vaultkeep/vaultkeep/internal/flagx"
	"github.com/vaultkeep/vaultkeep/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration so intervals can be written either as strings like
// "15m" or as integer nanoseconds. After parsing, values are copied
// into the runtime Config.
type JsonConfig struct {
	EndpointAddr  string         `json:"endpoint_addr"`
	DatabaseDSN   string         `json:"database_dsn"`
	TokenTTL      timex.Duration `json:"token_ttl"`
	SweepInterval timex.Duration `json:"sweep_interval"`
}

// parseJson overlays Config with values from a JSON file whose path is
// given via the -c or -config flags. If neither flag is set, nothing is
// loaded. Read or unmarshal errors panic; configuration is a startup
// concern.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.TokenTTL = c.TokenTTL.Duration
	config.SweepInterval = c.SweepInterval.Duration
}
