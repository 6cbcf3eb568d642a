package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/shiviagarwalwork/brainbites/internal/logger"
	"github.com/shiviagarwalwork/brainbites/internal/metrics"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

const defaultChallengeXP = 15

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath string // Path to the Excel or CSV file

	IDColumn         string
	TypeColumn       string
	CategoryColumn   string
	DifficultyColumn string
	TitleColumn      string
	BodyColumn       string
	AuthorColumn     string
	TopicsColumn     string // Comma separated
	OptionsColumn    string // "a=First|b=Second"
	CorrectColumn    string
	XPColumn         string
	FrontColumn      string
	BackColumn       string
	HintColumn       string

	SheetName string // Name of the sheet to import, Excel only
	StartRow  int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		IDColumn:         "A",
		TypeColumn:       "B",
		CategoryColumn:   "C",
		DifficultyColumn: "D",
		TitleColumn:      "E",
		BodyColumn:       "F",
		AuthorColumn:     "G",
		TopicsColumn:     "H",
		OptionsColumn:    "I",
		CorrectColumn:    "J",
		XPColumn:         "K",
		FrontColumn:      "L",
		BackColumn:       "M",
		HintColumn:       "N",
		SheetName:        "Sheet1",
		StartRow:         2,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// CardWriter stores imported cards
type CardWriter interface {
	Upsert(ctx context.Context, card models.FeedCard) (bool, error)
}

// Importer loads feed cards from spreadsheets into the card catalog
type Importer struct {
	repo    CardWriter
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewImporter creates an importer. m may be nil.
func NewImporter(repo CardWriter, log *logger.Logger, m *metrics.Metrics) *Importer {
	return &Importer{
		repo:    repo,
		log:     log.Named("catalog"),
		metrics: m,
		now:     time.Now,
	}
}

// Import reads cards from an Excel or CSV file
func (im *Importer) Import(ctx context.Context, cfg ImportConfig) (*ImportResult, error) {
	cols, err := resolveColumns(cfg)
	if err != nil {
		return nil, err
	}

	var result *ImportResult
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		result, err = im.importFromCSV(ctx, cfg, cols)
	} else {
		result, err = im.importFromExcel(ctx, cfg, cols)
	}
	if err != nil {
		return nil, err
	}

	im.log.Info("import finished",
		"file", cfg.FilePath,
		"processed", result.TotalProcessed,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (im *Importer) importFromExcel(ctx context.Context, cfg ImportConfig, cols columns) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		if err := im.processRow(ctx, row, cols, result, i+1); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, cfg ImportConfig, cols columns) (*ImportResult, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < cfg.StartRow {
			continue
		}
		if err := im.processRow(ctx, row, cols, result, rowNum); err != nil {
			return result, err
		}
	}
	return result, nil
}

// processRow imports one row. Row problems are collected in the result;
// only a cancelled context aborts the import.
func (im *Importer) processRow(ctx context.Context, row []string, cols columns, result *ImportResult, rowNum int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if blank(row) {
		result.Skipped++
		return nil
	}

	result.TotalProcessed++
	card, err := parseCard(row, cols)
	if err != nil {
		im.fail(result, rowNum, err)
		return nil
	}
	if card.ID == "" {
		card.ID = cardID(card)
	}
	card.CreatedAt = im.now().UTC()

	created, err := im.repo.Upsert(ctx, card)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		im.fail(result, rowNum, err)
		return nil
	}
	if created {
		result.Created++
		im.count("created")
	} else {
		result.Updated++
		im.count("updated")
	}
	return nil
}

func (im *Importer) fail(result *ImportResult, rowNum int, err error) {
	result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
	im.log.Debug("row rejected", "row", rowNum, "error", err)
	im.count("error")
}

func (im *Importer) count(outcome string) {
	if im.metrics != nil {
		im.metrics.CardsImported.WithLabelValues(outcome).Inc()
	}
}

// columns holds zero-based indexes; -1 means the column is not imported
type columns struct {
	id, typ, category, difficulty, title, body, author, topics,
	options, correct, xp, front, back, hint int
}

func resolveColumns(cfg ImportConfig) (columns, error) {
	var c columns
	fields := []struct {
		name string
		dst  *int
	}{
		{cfg.IDColumn, &c.id},
		{cfg.TypeColumn, &c.typ},
		{cfg.CategoryColumn, &c.category},
		{cfg.DifficultyColumn, &c.difficulty},
		{cfg.TitleColumn, &c.title},
		{cfg.BodyColumn, &c.body},
		{cfg.AuthorColumn, &c.author},
		{cfg.TopicsColumn, &c.topics},
		{cfg.OptionsColumn, &c.options},
		{cfg.CorrectColumn, &c.correct},
		{cfg.XPColumn, &c.xp},
		{cfg.FrontColumn, &c.front},
		{cfg.BackColumn, &c.back},
		{cfg.HintColumn, &c.hint},
	}
	for _, f := range fields {
		if f.name == "" {
			*f.dst = -1
			continue
		}
		n, err := excelize.ColumnNameToNumber(f.name)
		if err != nil {
			return c, fmt.Errorf("invalid column %q: %w", f.name, err)
		}
		*f.dst = n - 1
	}
	if c.typ < 0 || c.category < 0 {
		return c, errors.New("type and category columns are required")
	}
	return c, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseCard(row []string, cols columns) (models.FeedCard, error) {
	card := models.FeedCard{
		ID:         cell(row, cols.id),
		Type:       models.CardType(strings.ToLower(cell(row, cols.typ))),
		Category:   models.Category(strings.ToLower(cell(row, cols.category))),
		Difficulty: models.Difficulty(strings.ToLower(cell(row, cols.difficulty))),
		Title:      cell(row, cols.title),
		Body:       cell(row, cols.body),
		AuthorName: cell(row, cols.author),
		Topics:     splitList(cell(row, cols.topics)),
		Front:      cell(row, cols.front),
		Back:       cell(row, cols.back),
		Hint:       cell(row, cols.hint),
	}

	if !card.Type.Valid() {
		return card, fmt.Errorf("unknown card type %q", card.Type)
	}
	if !card.Category.Valid() {
		return card, fmt.Errorf("unknown category %q", card.Category)
	}
	if card.Difficulty == "" {
		card.Difficulty = models.DifficultyIntermediate
	}
	if !card.Difficulty.Valid() {
		return card, fmt.Errorf("unknown difficulty %q", card.Difficulty)
	}

	switch card.Type {
	case models.CardChallenge:
		options, err := ParseOptions(cell(row, cols.options))
		if err != nil {
			return card, err
		}
		if len(options) < 2 {
			return card, errors.New("challenge needs at least two options")
		}
		card.Options = options
		card.CorrectOptionID = cell(row, cols.correct)
		if !hasOption(options, card.CorrectOptionID) {
			return card, fmt.Errorf("correct option %q is not among the options", card.CorrectOptionID)
		}
		card.XPReward = defaultChallengeXP
		if raw := cell(row, cols.xp); raw != "" {
			xp, err := strconv.Atoi(raw)
			if err != nil || xp <= 0 {
				return card, fmt.Errorf("invalid xp reward %q", raw)
			}
			card.XPReward = xp
		}
		if card.Title == "" {
			return card, errors.New("title cannot be empty")
		}
	case models.CardFlashcard:
		if card.Front == "" || card.Back == "" {
			return card, errors.New("flashcard needs front and back")
		}
		if card.Title == "" {
			card.Title = card.Front
		}
	default:
		if card.Title == "" && card.Body == "" {
			return card, errors.New("title and body cannot both be empty")
		}
	}
	return card, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseOptions reads challenge options written as "a=First|b=Second"
func ParseOptions(s string) ([]models.ChallengeOption, error) {
	if s == "" {
		return nil, nil
	}
	var out []models.ChallengeOption
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, text, ok := strings.Cut(part, "=")
		id, text = strings.TrimSpace(id), strings.TrimSpace(text)
		if !ok || id == "" || text == "" {
			return nil, fmt.Errorf("malformed option %q", part)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate option id %q", id)
		}
		seen[id] = struct{}{}
		out = append(out, models.ChallengeOption{ID: id, Text: text})
	}
	return out, nil
}

func hasOption(options []models.ChallengeOption, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// cardID derives a stable id so re-importing a sheet without ids updates
// the same cards instead of duplicating them.
func cardID(card models.FeedCard) string {
	key := strings.Join([]string{string(card.Type), string(card.Category), strings.ToLower(card.Title), strings.ToLower(card.Front)}, "\x00")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("brainbites:"+key)).String()
}
