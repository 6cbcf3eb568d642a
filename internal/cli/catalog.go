package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shiviagarwalwork/brainbites/internal/catalog"
	"github.com/shiviagarwalwork/brainbites/internal/database"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

const defaultFeedSize = 10

func newFeedCmd(e *env) *cobra.Command {
	var category, cardType, difficulty string
	cmd := &cobra.Command{
		Use:   "feed [n]",
		Short: "Show the next cards ranked for you",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := defaultFeedSize
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v <= 0 {
					return fmt.Errorf("feed size must be a positive number, got %q", args[0])
				}
				n = v
			}
			filter := database.CardFilter{
				Category:   models.Category(category),
				Type:       models.CardType(cardType),
				Difficulty: models.Difficulty(difficulty),
			}
			cards, err := e.app.Feed(cmd.Context(), filter, n)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cards)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only cards of this category")
	cmd.Flags().StringVar(&cardType, "type", "", "only cards of this type")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "only cards of this difficulty")
	return cmd
}

func newCreateCmd(e *env) *cobra.Command {
	var (
		card    models.FeedCard
		options string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write your own card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if options != "" {
				opts, err := catalog.ParseOptions(options)
				if err != nil {
					return err
				}
				card.Options = opts
			}
			if card.Type == models.CardChallenge {
				if len(card.Options) < 2 {
					return fmt.Errorf("a challenge needs at least two --options")
				}
				found := false
				for _, o := range card.Options {
					found = found || o.ID == card.CorrectOptionID
				}
				if !found {
					return fmt.Errorf("--correct must name one of the options")
				}
			}
			if card.Type == models.CardFlashcard && card.Title == "" {
				card.Title = card.Front
			}
			created, out, err := e.app.CreateCard(cmd.Context(), card)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				Card    models.FeedCard `json:"card"`
				Outcome interface{}     `json:"outcome"`
			}{created, out})
		},
	}
	f := cmd.Flags()
	f.StringVar((*string)(&card.Type), "type", string(models.CardInsight), "card type")
	f.StringVar((*string)(&card.Category), "category", "", "card category")
	f.StringVar((*string)(&card.Difficulty), "difficulty", "", "beginner, intermediate or advanced")
	f.StringVar(&card.Title, "title", "", "card title")
	f.StringVar(&card.Body, "body", "", "card text")
	f.StringSliceVar(&card.Topics, "topics", nil, "comma separated topics")
	f.StringVar(&options, "options", "", `challenge options, e.g. "a=Yes|b=No"`)
	f.StringVar(&card.CorrectOptionID, "correct", "", "id of the correct challenge option")
	f.IntVar(&card.XPReward, "xp", 0, "XP for a correct challenge answer")
	f.StringVar(&card.Front, "front", "", "flashcard prompt")
	f.StringVar(&card.Back, "back", "", "flashcard answer")
	f.StringVar(&card.Hint, "hint", "", "flashcard hint")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newImportCmd(e *env) *cobra.Command {
	cfg := catalog.DefaultImportConfig()
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import cards from an Excel or CSV file",
		Long: `Import cards from an .xlsx or .csv file.

Columns, from A: id, type, category, difficulty, title, body, author,
topics, options, correct, xp, front, back, hint. Rows with an existing id
are updated. Rows without an id get one derived from their content, so
importing the same file twice does not duplicate cards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.FilePath = args[0]
			result, err := catalog.NewImporter(e.cards, e.log, e.metrics).Import(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&cfg.SheetName, "sheet", cfg.SheetName, "sheet to read from an Excel file")
	cmd.Flags().IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "first data row, 1-based")
	return cmd
}
