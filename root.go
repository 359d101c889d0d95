package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olgasafonova/mediawiki-delete-category/internal/cleanup"
	"github.com/olgasafonova/mediawiki-delete-category/internal/config"
	applog "github.com/olgasafonova/mediawiki-delete-category/internal/log"
	"github.com/olgasafonova/mediawiki-delete-category/internal/prompt"
	"github.com/olgasafonova/mediawiki-delete-category/internal/report"
	"github.com/olgasafonova/mediawiki-delete-category/metrics"
	"github.com/olgasafonova/mediawiki-delete-category/tracing"
	"github.com/olgasafonova/mediawiki-delete-category/wiki"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Its positional arguments are the bot
// username and password; running it performs one cleanup.
func NewRootCmd() *cobra.Command {
	cfg := &RunConfig{}
	var configPath string

	cmd := &cobra.Command{
		Use:   "mediawiki-delete-category <username> <password>",
		Short: "Delete the members of a MediaWiki deletion category",
		Long: `mediawiki-delete-category logs in with a bot password and deletes every
page and file in a category. Members that other pages still link to, or files
that pages still embed, are reported instead of deleted.

Without --auto every deletion is confirmed on the terminal, and members that
are still in use need a second confirmation. With --auto nothing is asked:
unused members are deleted and used ones are listed in a tree at the end.
Add --force to delete the used ones as well.`,
		Args:          cobra.ExactArgs(2),
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Username = args[0]
			cfg.Password = args[1]
			if err := applyConfigFile(cmd.Flags(), configPath); err != nil {
				return err
			}
			return runCleanup(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.APIURL, "api", "u", defaultAPIURL, "MediaWiki API endpoint")
	flags.StringVarP(&cfg.Category, "category", "c", defaultCategory, "category whose members are deleted")
	flags.BoolVarP(&cfg.Auto, "auto", "y", false, "delete without asking; skip members that are still used")
	flags.BoolVarP(&cfg.Force, "force", "f", false, "with --auto, also delete members that are still used")
	flags.StringVarP(&cfg.Reason, "reason", "r", defaultReason, "deletion summary")
	flags.StringVar(&cfg.Format, "format", report.FormatText, "skip report format (text, markdown, json)")
	flags.DurationVar(&cfg.Timeout, "timeout", wiki.DefaultTimeout, "timeout for each API request")
	flags.StringVar(&cfg.UserAgent, "user-agent", wiki.DefaultUserAgent, "User-Agent header sent to the wiki")
	flags.IntVar(&cfg.MaxRetries, "max-retries", 0, "retries for failed API requests")
	flags.Float64Var(&cfg.RateLimit, "rate-limit", 0, "maximum API requests per second (0 = unlimited)")
	flags.StringVar(&configPath, "config", "", "YAML file with flag defaults (default ./"+config.DefaultConfigFile+" or the XDG config dir)")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debug logging on stderr")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCleanup logs in, runs the engine and prints the skip report
func runCleanup(cmd *cobra.Command, cfg *RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	logger := applog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Debug, cfg.Password)

	reporter, err := report.NewWriter(cfg.Format, stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	traceConfig := tracing.DefaultConfig(getVersion())
	traceConfig.Writer = cmd.ErrOrStderr()
	shutdown, err := tracing.Setup(ctx, traceConfig)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	if cfg.MetricsFile != "" {
		defer func() {
			if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
				logger.Warn("Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
			}
		}()
	}

	client := wiki.NewClient(cfg.WikiConfig(), logger)
	defer client.Close()

	if err := client.Login(ctx); err != nil {
		return err
	}

	engine := cleanup.NewEngine(client, prompt.NewConsole(cmd.InOrStdin(), stdout), cfg.Options(),
		cleanup.WithOutput(stdout),
		cleanup.WithLogger(logger),
	)

	result, err := engine.Run(ctx)
	if err != nil {
		logger.Error("Run aborted",
			"category", cfg.Category,
			"deleted", len(result.Deleted),
			"error", err)
		return err
	}

	return report.Emit(reporter, result.Skipped)
}
