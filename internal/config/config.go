package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	// Path to the creature registry YAML, relative to the working directory
	// unless absolute.
	CreaturesPath string `json:"creatures_path"`
}

// LoadedConfig contains the server address, database path and registry path.
type LoadedConfig struct {
	ServerAddress string
	DatabasePath  string
	CreaturesPath string
}

// LoadConfig reads the configuration file at path. Every key is optional;
// missing values fall back to defaults that suit local development.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := &LoadedConfig{
		ServerAddress: ":8080",
		DatabasePath:  "beastgrid.db",
		CreaturesPath: "data/creatures.yaml",
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		out.DatabasePath = rc.Database.Path
	}
	if p := strings.TrimSpace(rc.CreaturesPath); p != "" {
		out.CreaturesPath = p
	}
	return out, nil
}
