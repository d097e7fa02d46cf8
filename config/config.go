package config

import (
	"os"

	"github.com/quantfeed/matchengine/pkg/matchengine"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// TradeFeedConfig configures the optional Kafka trade feed.
type TradeFeedConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type AppConfig struct {
	ServiceName string             `yaml:"service_name"`
	Engine      matchengine.Config `yaml:"engine"`
	InputFile   string             `yaml:"input_file"`
	OutputFile  string             `yaml:"output_file"`
	TradeFeed   *TradeFeedConfig   `yaml:"trade_feed"`
}

// Default returns the config used when no file is given: legacy-compatible
// engine semantics, stdin to stdout, no trade feed.
func Default() *AppConfig {
	return &AppConfig{
		ServiceName: "matchengine",
		Engine:      matchengine.DefaultConfig(),
	}
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}
	if len(filePath) == 0 {
		return Default(), nil
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := Default()

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
