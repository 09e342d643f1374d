package cmd

import (
	"errors"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptly/internal/apperr"
	"github.com/abhisek/adaptly/internal/config"
	"github.com/abhisek/adaptly/internal/engine"
	"github.com/abhisek/adaptly/internal/logging"
	"github.com/abhisek/adaptly/internal/store"
)

// skipStore marks commands that run without opening the database.
const skipStore = "adaptly/skip-store"

// app is the state shared by subcommands once the root pre-run has finished.
type app struct {
	cfg   *config.Config
	log   *logging.Logger
	store *store.Store
	svc   *engine.Service
}

// NewRootCmd builds the adaptly command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "adaptly",
		Short:         "Adaptive learning engine",
		Long:          "adaptly schedules reviews, picks what to practice and how to present it, reads how a learner is feeling, and tracks XP and streaks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to config file (default: ./adaptly.yaml or $XDG_CONFIG_HOME/adaptly/adaptly.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides ADAPTLY_DB env var)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.StringP("learner", "l", "me", "Learner id")

	root.AddCommand(
		newAttemptCmd(a),
		newReviewCmd(a),
		newPracticeCmd(a),
		newXPCmd(a),
		newStreakCmd(a),
		newEmotionCmd(a),
		newPresentCmd(a),
		newProfileCmd(a),
		newSessionCmd(a),
		newRulesCmd(a),
		newStatsCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", describe(err))
	}
	return err
}

func (a *app) setup(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	v := config.NewViper(configFile)
	if err := v.BindPFlag("database.path", cmd.Flags().Lookup("db")); err != nil {
		return err
	}
	if err := v.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if cmd.Annotations[skipStore] == "true" {
		return nil
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	a.store, err = store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.log.Debug("database opened", "path", dbPath)

	a.svc = engine.New(a.store, engine.Options{
		Logger:             a.log,
		ExpectedResponseMs: cfg.Session.ExpectedResponseMs,
		DefaultTimeMinutes: cfg.Learner.DefaultTimeMinutes,
		MessageSeed:        cfg.Emotion.MessageSeed,
	})
	return nil
}

func (a *app) close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}

// resolveDBPath returns the configured database path (--db flag, then
// database.path), falling back to ADAPTLY_DB and the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Database.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func learnerID(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("learner")
	return id
}

// describe turns input rejections into a short message.
func describe(err error) string {
	var in *apperr.InvalidInput
	if errors.As(err, &in) {
		return in.Error()
	}
	return err.Error()
}

// out returns the command's output writer. Colors are downsampled to what
// the destination supports, so redirected output is plain text.
func out(cmd *cobra.Command) io.Writer {
	return styledWriter{cmd.OutOrStdout()}
}

type styledWriter struct {
	w io.Writer
}

func (s styledWriter) Write(p []byte) (int, error) {
	if _, err := lipgloss.Fprint(s.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
