package config

import (
	"os"

	"github.com/stride-sim/stride/serror"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML tunables file on top of the default configuration. Fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, serror.New("config: unable to read %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, serror.New("config: unable to parse %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
