package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

func newOnboardCmd(e *env) *cobra.Command {
	var (
		interests  []string
		difficulty string
		goal       int
	)
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set your interests, difficulty and daily goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats := make([]models.Category, 0, len(interests))
			for _, s := range interests {
				cats = append(cats, models.Category(s))
			}
			diff := models.Difficulty(difficulty)
			if diff != "" && !diff.Valid() {
				return fmt.Errorf("unknown difficulty %q", difficulty)
			}
			if err := e.app.Onboard(cats, diff, goal); err != nil {
				return err
			}
			prefs, err := e.app.Preferences()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), prefs)
		},
	}
	cmd.Flags().StringSliceVar(&interests, "interests", nil, "comma separated categories, e.g. science,history")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "beginner, intermediate or advanced")
	cmd.Flags().IntVar(&goal, "goal", 0, "cards to view per day")
	return cmd
}

func newGoalCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "goal <views>",
		Short: "Change the daily goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("goal must be a number: %w", err)
			}
			return e.app.SetDailyGoal(goal)
		},
	}
}

func newFreezeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "freeze",
		Short: "Arm a streak freeze that covers one missed day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			armed, err := e.app.Freeze()
			if err != nil {
				return err
			}
			if !armed {
				return fmt.Errorf("a streak freeze is already active")
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"armed": true})
		},
	}
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show level, streak and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := e.app.Stats()
			if err != nil {
				return err
			}
			// The achievement grid has its own command
			st.Achievements = nil
			return printJSON(cmd.OutOrStdout(), st)
		},
	}
}

func newAchievementsCmd(e *env) *cobra.Command {
	var ack bool
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show every achievement and the progress towards it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ack {
				recent, err := e.app.AcknowledgeAchievements()
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), recent)
			}
			st, err := e.app.Stats()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), st.Achievements)
		},
	}
	cmd.Flags().BoolVar(&ack, "ack", false, "show and clear the unlocks not seen yet")
	return cmd
}

func newResetCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset erases all progress; pass --yes to confirm")
			}
			return e.app.Reset()
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
