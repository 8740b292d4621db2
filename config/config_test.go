package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupDirs(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv(EnvWebhookURL, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvDebug, "")
	return filepath.Join(root, "cfg"), filepath.Join(root, "data")
}

func writeSettings(t *testing.T, configDir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(configDir, 0700))
	require.NoError(t, os.WriteFile(GetSettingsFilePath(configDir), []byte(content), 0600))
}

func TestLoadDefaultsCreatesTemplates(t *testing.T) {
	configDir, _ := setupDirs(t)

	cfg, err := Load(LoadOptions{ConfigDir: configDir})
	require.NoError(t, err)

	require.Equal(t, "", cfg.WebhookURL)
	require.Equal(t, DefaultGreeting, cfg.Greeting)
	require.FileExists(t, GetSettingsFilePath(configDir))
	require.FileExists(t, filepath.Join(configDir, "keybindings.toml"))
	require.DirExists(t, cfg.DataDir())
}

func TestLoadSettingsFile(t *testing.T) {
	configDir, dataDir := setupDirs(t)
	writeSettings(t, configDir, `
webhook_url = "https://hooks.example.com/webhook/abc"
greeting = ""
data_directory = "`+dataDir+`"
`)

	cfg, err := Load(LoadOptions{ConfigDir: configDir})
	require.NoError(t, err)

	require.Equal(t, "https://hooks.example.com/webhook/abc", cfg.WebhookURL)
	require.Equal(t, "", cfg.Greeting, "explicit empty greeting disables it")
	require.Equal(t, dataDir, cfg.DataDir())

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestLoadPrecedence(t *testing.T) {
	configDir, _ := setupDirs(t)
	writeSettings(t, configDir, `webhook_url = "https://file.example.com/hook"`)

	t.Setenv(EnvWebhookURL, "https://env.example.com/hook")
	cfg, err := Load(LoadOptions{ConfigDir: configDir})
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com/hook", cfg.WebhookURL)

	cfg, err = Load(LoadOptions{ConfigDir: configDir, WebhookURL: "  https://flag.example.com/hook "})
	require.NoError(t, err)
	require.Equal(t, "https://flag.example.com/hook", cfg.WebhookURL)
}

func TestLoadRejectsBadTOML(t *testing.T) {
	configDir, _ := setupDirs(t)
	writeSettings(t, configDir, `webhook_url = `)

	_, err := Load(LoadOptions{ConfigDir: configDir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse settings")
}

func TestInitDebugLog(t *testing.T) {
	_, dataDir := setupDirs(t)
	require.NoError(t, EnsureDir(dataDir))
	t.Cleanup(func() {
		Debug = false
		DebugLog = nil
	})

	InitDebugLog(dataDir, false)
	require.Nil(t, DebugLog)

	InitDebugLog(dataDir, true)
	require.NotNil(t, DebugLog)
	require.True(t, Debug)

	data, err := os.ReadFile(filepath.Join(dataDir, "debug.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Debug logging started")
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	require.Equal(t, "/home/tester/.local/share/calchat", ExpandPath("~/.local/share/calchat"))
	require.Equal(t, "", ExpandPath(""))
}
