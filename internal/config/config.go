package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "PROMISE_DETECTOR_CONFIG"
	databasePathEnv   = "DETECTOR_DB_PATH"
	directoryURLEnv   = "DIRECTORY_API_URL"
	inspectionDSNEnv  = "INSPECT_DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Directory     DirectoryConfig    `yaml:"directory"`
	Inspection    InspectionConfig   `yaml:"inspection"`
	Notifications NotificationConfig `yaml:"notifications"`
	Audit         AuditConfig        `yaml:"audit"`
	Scout         ScoutConfig        `yaml:"scout"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Cases         []CaseConfig       `yaml:"cases"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig locates the embedded registry database file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DirectoryConfig selects the open-data directory used on lookup miss.
type DirectoryConfig struct {
	Provider       string `yaml:"provider"`
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// InspectionConfig points at the remote relational backend used for
// the offline diagnostic dump; empty DSN disables inspection.
type InspectionConfig struct {
	DSN    string   `yaml:"dsn"`
	Tables []string `yaml:"tables"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to reach the bot API.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// AuditConfig sets the annual-growth thresholds of the feasibility
// rating. Thresholds are policy, not hard-coded domain law.
type AuditConfig struct {
	HighGrowthThreshold float64 `yaml:"highGrowthThreshold"`
	LowGrowthThreshold  float64 `yaml:"lowGrowthThreshold"`
}

// ScoutConfig tunes the promise scout that scans public pages.
type ScoutConfig struct {
	Keywords []string `yaml:"keywords"`
}

// SchedulerConfig defines how often the audit pipeline re-runs.
type SchedulerConfig struct {
	IntervalHours int `yaml:"intervalHours"`
}

// CaseConfig describes one promise under watch.
type CaseConfig struct {
	Politician string         `yaml:"politician"`
	Statement  string         `yaml:"statement"`
	Page       string         `yaml:"page"`
	Topics     []string       `yaml:"topics"`
	Baseline   BaselineConfig `yaml:"baseline"`
}

// BaselineConfig holds the illustrative fiscal figures of a case.
type BaselineConfig struct {
	CurrentAmount    float64 `yaml:"currentAmount"`
	TargetMultiplier float64 `yaml:"targetMultiplier"`
	HorizonYears     int     `yaml:"horizonYears"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(directoryURLEnv); v != "" {
		c.Directory.BaseURL = v
	}

	if v := os.Getenv(inspectionDSNEnv); v != "" {
		c.Inspection.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Directory.Provider != "" {
		base.Directory.Provider = override.Directory.Provider
	}
	if override.Directory.BaseURL != "" {
		base.Directory.BaseURL = override.Directory.BaseURL
	}
	if override.Directory.TimeoutSeconds > 0 {
		base.Directory.TimeoutSeconds = override.Directory.TimeoutSeconds
	}

	if override.Inspection.DSN != "" {
		base.Inspection.DSN = override.Inspection.DSN
	}
	if len(override.Inspection.Tables) > 0 {
		base.Inspection.Tables = override.Inspection.Tables
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Audit.HighGrowthThreshold > 0 {
		base.Audit.HighGrowthThreshold = override.Audit.HighGrowthThreshold
	}
	if override.Audit.LowGrowthThreshold > 0 {
		base.Audit.LowGrowthThreshold = override.Audit.LowGrowthThreshold
	}

	if len(override.Scout.Keywords) > 0 {
		base.Scout.Keywords = override.Scout.Keywords
	}

	if override.Scheduler.IntervalHours > 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}

	if len(override.Cases) > 0 {
		base.Cases = override.Cases
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{Path: "data/detector.db"},
		Directory: DirectoryConfig{
			Provider:       "camara",
			BaseURL:        "https://dadosabertos.camara.leg.br/api/v2",
			TimeoutSeconds: 10,
		},
		Inspection: InspectionConfig{
			Tables: []string{
				"users", "politicians", "analyses", "promises",
				"audit_logs", "consents", "public_data_cache", "evidence_storage",
			},
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Audit: AuditConfig{
			HighGrowthThreshold: 0.15,
			LowGrowthThreshold:  0.08,
		},
		Scout: ScoutConfig{
			Keywords: []string{"promet", "vou ", "garantir", "dobrar", "compromisso"},
		},
		Scheduler: SchedulerConfig{IntervalHours: 24},
		Cases: []CaseConfig{
			{
				Politician: "Nikolas Ferreira",
				Statement:  "Vou garantir que o orçamento da educação básica seja dobrado até 2027.",
				Topics:     []string{"Fundeb", "educação"},
				Baseline: BaselineConfig{
					CurrentAmount:    180e9,
					TargetMultiplier: 2.0,
					HorizonYears:     3,
				},
			},
		},
	}
}
