package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/digitaldrywood/habittracker/internal/config"
	"github.com/digitaldrywood/habittracker/internal/google"
	"github.com/digitaldrywood/habittracker/internal/journal"
	"github.com/digitaldrywood/habittracker/internal/prompt"
	"github.com/digitaldrywood/habittracker/internal/tracker"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "habit",
	Short: "Track daily habits in a Google Sheet",
	Long: `habit keeps one sheet per year in a Google Spreadsheet, with a block of
rows per month: habits down the first column, days across the top.

Run without arguments to start an interactive session. The month grid is
created from the Config sheet the first time a month is opened.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return &tracker.SetupError{Op: "load config", Err: err}
		}
		cfg.ApplyYear(time.Now())

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = newLogger(level)
		if err != nil {
			return &tracker.SetupError{Op: "init logger", Err: err}
		}

		logger.Debug("config loaded",
			zap.String("path", cfg.Path),
			zap.String("sheet", cfg.SheetName),
			zap.String("timezone", cfg.Timezone))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		t, closeJournal, err := newTracker(cmd.Context())
		if err != nil {
			return err
		}
		defer closeJournal()

		return t.Run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		authCmd,
		summaryCmd,
		journalCmd,
	)
}

// newLogger writes human-readable logs to stderr so they stay out of the
// prompts on stdout.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.Sampling = nil
	zc.OutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return zc.Build()
}

// connect authenticates and returns a client bound to the configured
// spreadsheet.
func connect(ctx context.Context) (*google.SheetsClient, *google.Auth, error) {
	auth, err := google.NewAuth(cfg.CredentialsPath, cfg.TokenPath, cfg.OAuthRedirectURL, logger)
	if err != nil {
		return nil, nil, &tracker.SetupError{Op: "load credentials", Err: err}
	}

	service, err := auth.SheetsService(ctx)
	if err != nil {
		return nil, nil, &tracker.SetupError{Op: "authenticate", Err: err}
	}

	return google.NewSheetsClient(service, cfg.SpreadsheetID, logger), auth, nil
}

// newTracker connects to the spreadsheet and opens the sync journal. A
// journal that cannot be opened is logged and skipped.
func newTracker(ctx context.Context) (*tracker.Tracker, func(), error) {
	client, _, err := connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := tracker.Options{
		Sheets:    client,
		SheetName: cfg.SheetName,
		Prompter:  prompt.NewTerminal(),
		Logger:    logger,
		Location:  cfg.Location(),
	}

	closeJournal := func() {}
	db, err := journal.New(cfg.JournalPath, logger)
	if err != nil {
		logger.Warn("sync journal unavailable", zap.String("path", cfg.JournalPath), zap.Error(err))
	} else {
		opts.Journal = db
		closeJournal = func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close sync journal", zap.Error(err))
			}
		}
	}

	return tracker.NewTracker(opts), closeJournal, nil
}
