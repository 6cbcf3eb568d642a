// Package cli implements the brainbites command tree
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/shiviagarwalwork/brainbites/internal/app"
	"github.com/shiviagarwalwork/brainbites/internal/config"
	"github.com/shiviagarwalwork/brainbites/internal/database"
	"github.com/shiviagarwalwork/brainbites/internal/logger"
	"github.com/shiviagarwalwork/brainbites/internal/metrics"
	"github.com/shiviagarwalwork/brainbites/internal/persistence"
)

const shutdownTimeout = 10 * time.Second

// Version is set at build time
var Version = "dev"

// env is the state shared by every command of one invocation
type env struct {
	configPath string
	envFile    string

	cfg     *config.Config
	log     *logger.Logger
	db      *sqlx.DB
	metrics *metrics.Metrics
	cards   *database.CardRepository
	app     *app.App
}

// NewRootCommand builds the brainbites command tree
func NewRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "brainbites",
		Short: "Bite-sized learning with XP, streaks and achievements",
		Long: `brainbites drives the learning core from the command line.

Every command loads the saved state, applies one event and writes the
state back. Run "brainbites daemon" to send streak reminders.

Examples:
  # Open today's session
  brainbites start

  # Read, like and save a card
  brainbites view fact-42
  brainbites like fact-42
  brainbites save fact-42

  # Import cards and show a personalized feed
  brainbites import cards.xlsx
  brainbites feed 10`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.setup(cmd.Context()); err != nil {
				_ = e.teardown()
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&e.envFile, "env-file", ".env", "path to a .env file")

	root.AddCommand(
		newStartCmd(e),
		newViewCmd(e),
		newSwipeCmd(e),
		newDwellCmd(e),
		newLikeCmd(e),
		newUnlikeCmd(e),
		newSaveCmd(e),
		newUnsaveCmd(e),
		newShareCmd(e),
		newQuestionCmd(e),
		newAnswerCmd(e),
		newReviewCmd(e),
		newStashCmd(e),
		newCommentCmd(e),
		newOnboardCmd(e),
		newGoalCmd(e),
		newFreezeCmd(e),
		newStatsCmd(e),
		newAchievementsCmd(e),
		newFeedCmd(e),
		newCreateCmd(e),
		newImportCmd(e),
		newResetCmd(e),
		newDaemonCmd(e),
	)
	closeAfterRun(root, e)
	return root
}

// closeAfterRun saves state and closes the database after every command,
// including the ones that fail
func closeAfterRun(cmd *cobra.Command, e *env) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if terr := e.teardown(); err == nil {
				err = terr
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, e)
	}
}

func (e *env) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(e.configPath, e.envFile)
	if err != nil {
		return err
	}
	e.cfg = cfg

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return err
	}
	e.log = log

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	e.db = db
	e.cards = database.NewCardRepository(db)
	e.metrics = metrics.New()

	store := persistence.NewStore(
		database.NewRecordRepository(db),
		log,
		cfg.Persistence.FlushInterval,
		persistence.WithObserver(e.metrics.ObserveWrite),
	)
	e.app = app.New(store, e.cards, log, app.Options{
		DailyGoal: cfg.Gamification.DailyGoal,
		Metrics:   e.metrics,
	})
	if err := e.app.Open(ctx); err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	return nil
}

func (e *env) teardown() error {
	var firstErr error
	if e.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.app.Close(ctx); err != nil {
			firstErr = fmt.Errorf("failed to save state: %w", err)
		}
		e.app = nil
	}
	if e.db != nil {
		if err := e.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
		e.db = nil
	}
	if e.log != nil {
		e.log.Sync()
	}
	return firstErr
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
