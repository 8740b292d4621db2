package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"calchat/config"
	"calchat/ui"
	"calchat/webhook"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts config.LoadOptions

	rootCmd := &cobra.Command{
		Use:   "calchat",
		Short: "Terminal chat with a calendar assistant behind a webhook",
		Long: `calchat relays each message you type to an automation webhook
(an n8n workflow, for example) and shows the reply.

The webhook URL can be set in the app (Alt+W), in settings.toml,
with CALCHAT_WEBHOOK_URL, or with --webhook-url.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "webhook endpoint for this run")
	rootCmd.Flags().StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.config/calchat)")
	rootCmd.Flags().BoolVar(&opts.Debug, "debug", false, "write a debug log to the data directory")

	rootCmd.AddCommand(newMockWebhookCommand())

	return rootCmd
}

func runChat(opts config.LoadOptions) error {
	if err := config.LoadDotEnv(); err != nil {
		return showStartupError("Configuration Error", err, ".env could not be parsed")
	}

	cfg, err := config.Load(opts)
	if err != nil {
		hint := fmt.Sprintf("Check %s", config.GetSettingsFilePath(configDirFor(opts)))
		return showStartupError("Configuration Error", err, hint)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir(), opts.Debug)

	hook := webhook.NewClient(&http.Client{}, "calchat/"+Version)

	p := tea.NewProgram(
		ui.NewAppView(cfg, hook, Version, License),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running calchat: %v\n", err)
		return err
	}
	return nil
}

func configDirFor(opts config.LoadOptions) string {
	if opts.ConfigDir != "" {
		return config.ExpandPath(opts.ConfigDir)
	}
	return config.GetConfigDir()
}

// showStartupError shows err in a modal and returns it so the process exits non-zero
func showStartupError(title string, err error, hint string) error {
	p := tea.NewProgram(
		ui.NewErrorModal(title, err, hint),
		tea.WithAltScreen(),
	)
	if _, runErr := p.Run(); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
