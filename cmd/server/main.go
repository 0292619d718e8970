// Package main implements the entry point for the slash command task bot,
// which records tasks and delivers reminders for chat users.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/slack-taskbot/internal/config"
	"github.com/phrazzld/slack-taskbot/internal/platform/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "slackbot",
		Short:        "Slash command task bot",
		Long:         "Serves /task, /reminder, /complete and /list slash commands and posts reminders back to the channel.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := initializeApp(v)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.run(ctx)
		},
	}

	flags := root.Flags()
	flags.String("config", "", "path to a YAML config file")
	flags.Int("port", 8080, "HTTP listen port")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	_ = v.BindPFlag(config.FileKey, flags.Lookup("config"))
	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("server.log_level", flags.Lookup("log-level"))

	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(v *viper.Viper) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"timezone", cfg.Server.Timezone,
		"verification_token_present", cfg.Slack.VerificationToken != "",
		"bot_token_present", cfg.Slack.BotToken != "")

	return cfg, log, nil
}
