package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shiviagarwalwork/brainbites/internal/app"
	"github.com/shiviagarwalwork/brainbites/internal/review"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func newStartCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start today's session: check the streak and claim the daily reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := e.app.StartSession()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newViewCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "view <card>",
		Short: "Count a card as viewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.app.View(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newSwipeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "swipe <card> <up|down|left|right> [dwell]",
		Short: "Leave a card with a swipe; up likes it",
		Long: `Leave a card with a swipe. Swiping up likes the card.
dwell is how long the card was on screen, e.g. 4s or 1500ms.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := models.SwipeDirection(strings.ToLower(args[1]))
			switch dir {
			case models.SwipeUp, models.SwipeDown, models.SwipeLeft, models.SwipeRight:
			default:
				return fmt.Errorf("unknown swipe direction %q", args[1])
			}
			var dwell time.Duration
			if len(args) == 3 {
				d, err := time.ParseDuration(args[2])
				if err != nil {
					return fmt.Errorf("invalid dwell time: %w", err)
				}
				dwell = d
			}
			out, err := e.app.Swipe(args[0], dir, dwell)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newDwellCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dwell <card> <duration>",
		Short: "Add reading time to a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[1])
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			return e.app.TrackDwell(args[0], d)
		},
	}
}

// cardEventCmd builds the one-argument like/save/share style commands
func cardEventCmd(use, short string, fn func(cardID string) (app.Outcome, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <card>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := fn(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newLikeCmd(e *env) *cobra.Command {
	return cardEventCmd("like", "Like a card", func(id string) (app.Outcome, error) { return e.app.Like(id) })
}

func newUnlikeCmd(e *env) *cobra.Command {
	return cardEventCmd("unlike", "Remove a like", func(id string) (app.Outcome, error) { return e.app.Unlike(id) })
}

func newSaveCmd(e *env) *cobra.Command {
	return cardEventCmd("save", "Save a card", func(id string) (app.Outcome, error) { return e.app.Save(id) })
}

func newUnsaveCmd(e *env) *cobra.Command {
	return cardEventCmd("unsave", "Remove a save", func(id string) (app.Outcome, error) { return e.app.Unsave(id) })
}

func newShareCmd(e *env) *cobra.Command {
	return cardEventCmd("share", "Share a card", func(id string) (app.Outcome, error) { return e.app.Share(id) })
}

func newQuestionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "question <card>",
		Short: "Show a challenge or flashcard as a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := e.app.Present(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), q)
		},
	}
}

func newAnswerCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "answer <card> <option>",
		Short: "Answer a challenge card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.app.Answer(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newReviewCmd(e *env) *cobra.Command {
	var due bool
	cmd := &cobra.Command{
		Use:   "review [card] [quality]",
		Short: "Grade a flashcard recall from 0 (blackout) to 5 (perfect)",
		Long: `Grade how well you recalled a flashcard, from 0 (blackout) to 5 (perfect).
With --due, list the flashcards waiting for review instead.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if due {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if due {
				records, err := e.app.DueReviews(0)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), records)
			}
			q, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quality must be a number: %w", err)
			}
			out, err := e.app.Review(cmd.Context(), args[0], review.Quality(q))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&due, "due", false, "list flashcards due for review")
	return cmd
}
