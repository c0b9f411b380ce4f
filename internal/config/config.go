package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// RegistryConfig locates the roster, category, and channel configuration
// files consumed by a report run.
type RegistryConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	RosterFile   string `yaml:"roster_file" mapstructure:"roster_file"`
	CategoryFile string `yaml:"category_file" mapstructure:"category_file"`
	ChannelFile  string `yaml:"channel_file" mapstructure:"channel_file"`
}

// ReportConfig configures report output and commentary thresholds.
type ReportConfig struct {
	OutputDir           string `yaml:"output_dir" mapstructure:"output_dir"`
	ManagerPrefix       string `yaml:"manager_prefix" mapstructure:"manager_prefix"`
	ChannelPrefix       string `yaml:"channel_prefix" mapstructure:"channel_prefix"`
	ManagerPraiseTotal  int    `yaml:"manager_praise_total" mapstructure:"manager_praise_total"`
	ChannelPraisePoints int    `yaml:"channel_praise_points" mapstructure:"channel_praise_points"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the report HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ROLLCALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("registry.dir", "config")
	v.SetDefault("registry.roster_file", "存量经理配置.json")
	v.SetDefault("registry.category_file", "存量业务配置.json")
	v.SetDefault("registry.channel_file", "渠道厅店配置.json")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.manager_prefix", "存量经理接龙数据通报")
	v.SetDefault("report.channel_prefix", "渠道厅店接龙数据通报")
	v.SetDefault("report.manager_praise_total", 3)
	v.SetDefault("report.channel_praise_points", 100)
	v.SetDefault("store.path", "rollcall.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
