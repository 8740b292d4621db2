package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	EnvWebhookURL = "CALCHAT_WEBHOOK_URL"
	EnvDataDir    = "CALCHAT_DATA_DIR"
	EnvDebug      = "CALCHAT_DEBUG"
)

// DefaultGreeting is the first assistant message of every conversation.
const DefaultGreeting = "Hi! I'm your calendar assistant. I can help you schedule meetings, " +
	"check your availability, and manage your events. What would you like to do?"

// Settings mirrors settings.toml. Greeting is a pointer so an explicit empty
// string can disable the greeting.
type Settings struct {
	WebhookURL    string  `toml:"webhook_url"`
	Greeting      *string `toml:"greeting"`
	DataDirectory string  `toml:"data_directory"`
}

type Config struct {
	ConfigDirectory string
	DataDirectory   string
	WebhookURL      string
	Greeting        string
	Keybindings     *KeyBindingsConfig
}

// LoadOptions carries command line overrides. Empty fields are ignored.
type LoadOptions struct {
	ConfigDir  string
	WebhookURL string
	Debug      bool
}

var Debug = false
var DebugLog *zerolog.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv(EnvWebhookURL); url != "" {
		c.WebhookURL = url
	}
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv(EnvDebug)
	return debug == "true" || debug == "1"
}

// LoadDotEnv loads ./.env into the process environment. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// InitDebugLog opens <dataDir>/debug.log when debugging is requested and
// points DebugLog at it. DebugLog stays nil otherwise.
func InitDebugLog(dataDir string, force bool) {
	if !force && !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log contains message text and the webhook URL
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	logger := zerolog.New(f).With().Timestamp().Caller().Logger()
	DebugLog = &logger
	DebugLog.Debug().Str("path", logPath).Msg("=== Debug logging started ===")
}

// Load resolves configuration with precedence defaults < settings.toml < env < flags.
func Load(opts LoadOptions) (*Config, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = GetConfigDir()
	}
	configDir = ExpandPath(configDir)

	cfg := &Config{
		ConfigDirectory: configDir,
		DataDirectory:   GetDefaultDataDir(),
		Greeting:        DefaultGreeting,
	}

	settings, err := LoadSettings(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cfg.applySettings(settings)
	cfg.applyEnvOverrides()

	if opts.WebhookURL != "" {
		cfg.WebhookURL = opts.WebhookURL
	}
	cfg.WebhookURL = strings.TrimSpace(cfg.WebhookURL)

	keybindings, err := LoadKeybindings(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	if ok, warning := keybindings.Validate(); !ok {
		return nil, fmt.Errorf("invalid keybindings: %s", warning)
	}
	cfg.Keybindings = keybindings

	dataDir := cfg.DataDir()
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) applySettings(s *Settings) {
	if s == nil {
		return
	}
	if s.WebhookURL != "" {
		c.WebhookURL = s.WebhookURL
	}
	if s.Greeting != nil {
		c.Greeting = *s.Greeting
	}
	if s.DataDirectory != "" {
		c.DataDirectory = s.DataDirectory
	}
}
