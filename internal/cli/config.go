package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
	cfgKeyDSN     = "dsn"
	cfgKeySeed    = "seed"

	cfgKeyLogLevel = "log.level"
	cfgKeyLogJSON  = "log.json"

	cfgKeyServerAddress         = "server.address"
	cfgKeyServerPort            = "server.port"
	cfgKeyServerRateLimit       = "server.rate_limit"
	cfgKeyServerRateLimitBurst  = "server.rate_limit_burst"
	cfgKeyServerShutdownTimeout = "server.shutdown_timeout"

	cfgKeyS3Bucket    = "archive.s3.bucket"
	cfgKeyS3Prefix    = "archive.s3.prefix"
	cfgKeyS3Region    = "archive.s3.region"
	cfgKeyS3Endpoint  = "archive.s3.endpoint"
	cfgKeyS3PathStyle = "archive.s3.path_style"

	envPrefix = "RECIPECOST"
)

// defaults holds the value of every key when neither config.yaml nor the
// environment sets it.
var defaults = map[string]any{
	cfgKeyBackend:               "sqlite",
	cfgKeyDataDir:               "",
	cfgKeyDSN:                   "",
	cfgKeySeed:                  false,
	cfgKeyLogLevel:              "warn",
	cfgKeyLogJSON:               false,
	cfgKeyServerAddress:         "",
	cfgKeyServerPort:            8080,
	cfgKeyServerRateLimit:       100.0,
	cfgKeyServerRateLimitBurst:  200,
	cfgKeyServerShutdownTimeout: 30 * time.Second,
	cfgKeyS3Bucket:              "",
	cfgKeyS3Prefix:              "",
	cfgKeyS3Region:              "",
	cfgKeyS3Endpoint:            "",
	cfgKeyS3PathStyle:           false,
}

// loadConfig reads config.yaml from configDir using Viper. A missing file
// is not an error. Every key except data_dir can be overridden by a
// RECIPECOST_ variable, e.g. RECIPECOST_SERVER_PORT; data_dir follows the
// directory precedence in package paths instead.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key := range defaults {
		if key == cfgKeyDataDir {
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
