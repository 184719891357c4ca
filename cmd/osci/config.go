package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KyahWill/osci"
	"github.com/KyahWill/osci/backend"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the resolved command configuration.
type Config struct {
	BackendURL  string        `mapstructure:"backend_url" validate:"required,url"`
	UserID      string        `mapstructure:"user_id" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ChatTimeout time.Duration `mapstructure:"chat_timeout" validate:"gt=0"`
	Transcript  string        `mapstructure:"transcript"`
	Resume      string        `mapstructure:"resume_transcript"`
	Log         LogConfig     `mapstructure:"log"`
}

// LogConfig holds the log file settings.
type LogConfig struct {
	Level  string        `mapstructure:"level" validate:"oneof=debug info warn error"`
	Dir    string        `mapstructure:"dir" validate:"required"`
	MaxAge time.Duration `mapstructure:"max_age" validate:"gt=0"`
}

var validate = validator.New()

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"backend-url":       "backend_url",
	"user-id":           "user_id",
	"timeout":           "timeout",
	"chat-timeout":      "chat_timeout",
	"transcript":        "transcript",
	"resume-transcript": "resume_transcript",
	"log-level":         "log.level",
	"log-dir":           "log.dir",
}

// addFlags registers the configuration flags on fs.
func addFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file (default $HOME/.osci/config.yaml)")
	fs.String("backend-url", "", "Backend base URL")
	fs.String("user-id", "", "User the chat sessions are opened for")
	fs.Duration("timeout", 0, "Timeout of validate, gather and session requests")
	fs.Duration("chat-timeout", 0, "Timeout of chat requests")
	fs.String("transcript", "", "Write the last chat transcript to this file on exit")
	fs.String("resume-transcript", "", "Show the conversation saved in this file when chatting about the same repository")
	fs.String("log-level", "", "Log level: debug, info, warn, error")
	fs.String("log-dir", "", "Directory of the rotated log files")
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("backend_url", backend.DefaultBaseURL)
	v.SetDefault("user_id", osci.DefaultUserID)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("chat_timeout", 2*time.Minute)
	v.SetDefault("transcript", "")
	v.SetDefault("resume_transcript", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", filepath.Join(home, ".osci", "logs"))
	v.SetDefault("log.max_age", 7*24*time.Hour)
}

// loadConfig merges defaults, the config file, the environment and the
// changed flags of fs, in increasing precedence. home locates the default
// config file and log directory.
func loadConfig(fs *pflag.FlagSet, home string) (Config, error) {
	v := viper.New()
	setDefaults(v, home)

	path, _ := fs.GetString("config")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, ".osci", "config.yaml")
	}
	if _, err := os.Stat(path); err == nil || explicit {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("OSCI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend_url", "OSCI_BACKEND_URL", "API_BACKEND_URL"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, configError(err)
	}
	return cfg, nil
}

// configError turns validation failures into one readable error.
func configError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "url":
			msgs = append(msgs, field+" must be a URL")
		case "gt":
			msgs = append(msgs, field+" must be positive")
		case "oneof":
			msgs = append(msgs, field+" must be one of "+e.Param())
		default:
			msgs = append(msgs, field+" failed "+e.Tag())
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
