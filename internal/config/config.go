package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
	"github.com/flipdeck/flipdeck/internal/risk"
)

type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	State     StateConfig               `mapstructure:"state"`
	Archive   ArchiveConfig             `mapstructure:"archive"`
	Journal   JournalConfig             `mapstructure:"journal"`
	Risk      RiskConfig                `mapstructure:"risk"`
	Notifiers map[string]NotifierConfig `mapstructure:"notifiers"`
	LLM       LLMConfig                 `mapstructure:"llm"`
	Metrics   MetricsConfig             `mapstructure:"metrics"`
	Alerts    AlertsConfig              `mapstructure:"alerts"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// StateConfig points at the persisted journal document.
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// ArchiveConfig selects the snapshot backend.
type ArchiveConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// JournalConfig carries the user-tunable journal defaults.
type JournalConfig struct {
	RiskWarningThreshold float64 `mapstructure:"risk_warning_threshold"`
	DefaultStrategy      string  `mapstructure:"default_strategy"`
	DefaultPair          string  `mapstructure:"default_pair"`
	MaxSLAmount          float64 `mapstructure:"max_sl_amount"`
	MaxDailyTrades       int     `mapstructure:"max_daily_trades"`
	MaxDailyLosses       int     `mapstructure:"max_daily_losses"`
	AutoWithdrawalRules  bool    `mapstructure:"auto_withdrawal_rules"`
}

// RiskConfig overrides the risk policy. Zero values fall back to the
// built-in defaults; micro_flip switches the strict overlay on.
type RiskConfig struct {
	MicroFlip            bool    `mapstructure:"micro_flip"`
	RiskThresholdPercent float64 `mapstructure:"risk_threshold_percent"`
	MinRewardMultiple    float64 `mapstructure:"min_reward_multiple"`
	MaxLotSize           float64 `mapstructure:"max_lot_size"`
	DrawdownWarnPct      float64 `mapstructure:"drawdown_warn_pct"`
}

type NotifierConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
}

type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AlertsConfig holds alerts configuration.
type AlertsConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	CheckInterval time.Duration `mapstructure:"check_interval"`
	Cooldown      time.Duration `mapstructure:"cooldown"`
	Rules         []AlertRule   `mapstructure:"rules"`
}

// AlertRule defines a single alert rule.
type AlertRule struct {
	Name     string        `mapstructure:"name"`
	Expr     string        `mapstructure:"expr"`
	For      time.Duration `mapstructure:"for"`
	Severity string        `mapstructure:"severity"`
	Message  string        `mapstructure:"message"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	settings := journal.DefaultSettings()
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		State: StateConfig{
			Path: "data/journal.json",
		},
		Archive: ArchiveConfig{
			Type: "localfs",
			Path: "data/archive",
		},
		Journal: JournalConfig{
			RiskWarningThreshold: settings.RiskWarningThreshold,
			MaxSLAmount:          settings.MaxSLAmount,
			MaxDailyTrades:       settings.MaxDailyTrades,
			MaxDailyLosses:       settings.MaxDailyLosses,
			AutoWithdrawalRules:  settings.AutoWithdrawalRules,
		},
		Risk: RiskConfig{
			MicroFlip: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Alerts: AlertsConfig{
			Enabled:       false,
			CheckInterval: 60 * time.Second,
			Cooldown:      5 * time.Minute,
		},
	}
}

// Settings converts the journal section into journal settings.
func (c *Config) Settings() journal.Settings {
	return journal.Settings{
		RiskWarningThreshold: c.Journal.RiskWarningThreshold,
		DefaultStrategy:      c.Journal.DefaultStrategy,
		DefaultPair:          c.Journal.DefaultPair,
		MaxSLAmount:          c.Journal.MaxSLAmount,
		MaxDailyTrades:       c.Journal.MaxDailyTrades,
		MaxDailyLosses:       c.Journal.MaxDailyLosses,
		AutoWithdrawalRules:  c.Journal.AutoWithdrawalRules,
	}
}

// Policy builds the risk policy from the risk section. Unset numeric
// fields keep the built-in defaults.
func (c *Config) Policy() risk.Policy {
	p := risk.Default()
	if c.Risk.MicroFlip {
		p = risk.MicroFlip()
	}
	if c.Risk.RiskThresholdPercent > 0 {
		p.RiskThresholdPercent = c.Risk.RiskThresholdPercent
	}
	if c.Risk.MinRewardMultiple > 0 {
		p.MinRewardMultiple = c.Risk.MinRewardMultiple
	}
	if c.Risk.MaxLotSize > 0 {
		p.MaxLotSize = c.Risk.MaxLotSize
	}
	if c.Risk.DrawdownWarnPct > 0 {
		p.DrawdownWarnPct = c.Risk.DrawdownWarnPct
	}
	return p
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.State.Path == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("state path is required"))
	}

	switch c.Archive.Type {
	case "", "localfs":
		if c.Archive.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("archive path required for localfs"))
		}
	case "s3":
		if c.Archive.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when archive type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", c.Archive.Type))
	}

	// Risk validation
	if c.Risk.RiskThresholdPercent < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("risk_threshold_percent cannot be negative, got %f", c.Risk.RiskThresholdPercent))
	}
	if c.Journal.MaxSLAmount < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_sl_amount cannot be negative, got %f", c.Journal.MaxSLAmount))
	}

	// LLM validation - if provider set, check config exists
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "claude":
			if c.LLM.Claude.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("claude api_key required when provider is claude"))
			}
		case "openai":
			if c.LLM.OpenAI.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("openai api_key required when provider is openai"))
			}
		case "ollama":
			if c.LLM.Ollama.Endpoint == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("ollama endpoint required when provider is ollama"))
			}
		}
	}

	return nil
}
