package config

import (
	"encoding/json"
	"os"

	"github.com/carnetapp/carnet/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	StoreURL string `json:"store_url"`
	StoreKey string `json:"store_key"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. Only non-empty fields override.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreURL != "" {
		cfg.StoreURL = jc.StoreURL
	}
	if jc.StoreKey != "" {
		cfg.StoreKey = jc.StoreKey
	}
}
