package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/recipecost/internal/paths"
	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Backend string        `yaml:"backend"`
	DataDir string        `yaml:"data_dir,omitempty"`
	DSN     string        `yaml:"dsn,omitempty"`
	Seed    bool          `yaml:"seed"`
	Log     logSection    `yaml:"log"`
	Server  serverSection `yaml:"server"`
}

type logSection struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type serverSection struct {
	Address        string  `yaml:"address"`
	Port           int     `yaml:"port"`
	RateLimit      float64 `yaml:"rate_limit"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize recipecost storage",
		Long: "Create the configuration directory and a default config.yaml if missing,\n" +
			"then open the configured backend once so its schema exists.",
		Args: noArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	path := paths.ConfigFile(a.configDir)
	written, err := writeConfigIfMissing(path, configFile{
		Backend: cfg.Backend,
		DataDir: cfg.DataDir,
		DSN:     cfg.DSN,
		Seed:    a.v.GetBool(cfgKeySeed),
		Log: logSection{
			Level: a.v.GetString(cfgKeyLogLevel),
			JSON:  a.v.GetBool(cfgKeyLogJSON),
		},
		Server: serverSection{
			Address:        a.v.GetString(cfgKeyServerAddress),
			Port:           a.v.GetInt(cfgKeyServerPort),
			RateLimit:      a.v.GetFloat64(cfgKeyServerRateLimit),
			RateLimitBurst: a.v.GetInt(cfgKeyServerRateLimitBurst),
		},
	})
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := a.withStore(func(types.Store) error { return nil }); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	if written {
		fmt.Fprintf(out(cmd), "Wrote %s\n", path)
	}
	fmt.Fprintf(out(cmd), "recipecost initialized (%s backend)\n", cfg.Backend)
	return nil
}

// writeConfigIfMissing creates path with cfg unless the file exists. It
// reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
