package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"calchat/mockhook"
	"calchat/webhook"
)

func newMockWebhookCommand() *cobra.Command {
	var (
		addr  string
		opts  mockhook.Options
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mock-webhook",
		Short: "Run a local webhook that answers like the calendar workflow",
		Long: `Starts an HTTP server that accepts the chat client's JSON body on
POST / and POST /webhook and answers {"response": "..."}.

Point calchat at it with:
  calchat --webhook-url http://localhost:8787/webhook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				With().Timestamp().Logger()

			opts.Delay = delay
			return mockhook.Run(ctx, addr, mockhook.NewRouter(opts, logger), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", mockhook.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.Reply, "reply", "", "fixed reply text (default: echo the message)")
	cmd.Flags().IntVar(&opts.Status, "status", 0, "force an HTTP status code")
	cmd.Flags().StringVar(&opts.Field, "field", webhook.ReplyKeys[0], "JSON key carrying the reply")
	cmd.Flags().DurationVar(&delay, "delay", 0, "wait before answering")

	return cmd
}
