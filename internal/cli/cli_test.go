package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shiviagarwalwork/brainbites/internal/app"
	"github.com/shiviagarwalwork/brainbites/internal/catalog"
	"github.com/shiviagarwalwork/brainbites/internal/personalization"
	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// useTempState points every command at a fresh sqlite file
func useTempState(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BRAINBITES_DATABASE_TYPE", "sqlite")
	t.Setenv("BRAINBITES_DATABASE_PATH", filepath.Join(dir, "state", "brainbites.db"))
	t.Setenv("BRAINBITES_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, v interface{}, args ...string) {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, args)
	if v != nil {
		require.NoError(t, json.Unmarshal([]byte(out), v), out)
	}
}

func TestStartAndViewPersistAcrossRuns(t *testing.T) {
	useTempState(t)

	var start app.Outcome
	mustRun(t, &start, "start")
	assert.True(t, start.Changed)
	require.NotNil(t, start.Streak)
	assert.Equal(t, 1, start.Streak.NewStreak)

	for i := 0; i < 3; i++ {
		var out app.Outcome
		mustRun(t, &out, "view", "card-1")
		assert.Equal(t, i+1, out.ViewsToday)
	}

	var like app.Outcome
	mustRun(t, &like, "like", "card-1")
	assert.True(t, like.Changed)

	// A second like is a no-op
	mustRun(t, &like, "like", "card-1")
	assert.False(t, like.Changed)

	var st app.Stats
	mustRun(t, &st, "stats")
	assert.Equal(t, 3, st.Progression.TotalCardsViewed)
	assert.Equal(t, 1, st.Progression.CurrentStreak)
	assert.Equal(t, 1, st.Liked)
	assert.Nil(t, st.Achievements)
}

func TestSwipeRejectsUnknownDirection(t *testing.T) {
	useTempState(t)

	_, err := run(t, "swipe", "card-1", "sideways")
	assert.Error(t, err)

	var out app.Outcome
	mustRun(t, &out, "swipe", "card-1", "up", "3s")
	assert.True(t, out.Changed)
}

func TestStashCommands(t *testing.T) {
	useTempState(t)

	var s models.Stash
	mustRun(t, &s, "stash", "create", "Brain", "food", "--icon", "🧠")
	assert.Equal(t, "Brain food", s.Name)

	var res map[string]bool
	mustRun(t, &res, "stash", "add", s.ID, "card-1")
	assert.True(t, res["changed"])

	var got models.Stash
	mustRun(t, &got, "stash", "list", s.ID)
	assert.Equal(t, []string{"card-1"}, got.CardIDs)

	mustRun(t, &res, "stash", "delete", s.ID)
	assert.True(t, res["deleted"])

	_, err := run(t, "stash", "list", s.ID)
	assert.Error(t, err)
}

func TestCommentCommands(t *testing.T) {
	useTempState(t)

	mustRun(t, nil, "comment", "add", "card-1", "great", "read")
	var comments []models.Comment
	mustRun(t, &comments, "comment", "list", "card-1")
	require.Len(t, comments, 1)
	assert.Equal(t, "great read", comments[0].Content)
}

func TestImportCreateAndFeed(t *testing.T) {
	dir := useTempState(t)

	path := filepath.Join(dir, "cards.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "type", "category"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"f1", "fact", "science", "beginner", "Octopus hearts", "Octopuses have three hearts."}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"f2", "fact", "health", "", "Short war", "The shortest war lasted 38 minutes."}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	var result catalog.ImportResult
	mustRun(t, &result, "import", path)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)

	var created struct {
		Card    models.FeedCard `json:"card"`
		Outcome app.Outcome     `json:"outcome"`
	}
	mustRun(t, &created, "create", "--category", "psychology", "--title", "Flow", "--body", "Deep focus feels timeless.")
	assert.NotEmpty(t, created.Card.ID)
	assert.Greater(t, created.Outcome.XPGained, 0)

	var feed []personalization.ScoredCard
	mustRun(t, &feed, "feed", "5")
	assert.Len(t, feed, 3)

	mustRun(t, &feed, "feed", "--category", "science")
	require.Len(t, feed, 1)
	assert.Equal(t, "f1", feed[0].Card.ID)
}

func TestCreateChallengeValidation(t *testing.T) {
	useTempState(t)

	_, err := run(t, "create", "--type", "challenge", "--category", "science", "--title", "Q", "--options", "a=Yes")
	assert.Error(t, err)

	_, err = run(t, "create", "--type", "challenge", "--category", "science", "--title", "Q",
		"--options", "a=Yes|b=No", "--correct", "c")
	assert.Error(t, err)

	var created struct {
		Card models.FeedCard `json:"card"`
	}
	mustRun(t, &created, "create", "--type", "challenge", "--category", "science", "--title", "Is water wet?",
		"--options", "a=Yes|b=No", "--correct", "a")

	var ans app.AnswerOutcome
	mustRun(t, &ans, "answer", created.Card.ID, "a")
	assert.True(t, ans.Result.Correct)
}

func TestOnboardGoalAndFreeze(t *testing.T) {
	useTempState(t)

	var prefs models.PersonalizationWeights
	mustRun(t, &prefs, "onboard", "--interests", "science,health", "--difficulty", "advanced", "--goal", "5")

	_, err := run(t, "onboard", "--difficulty", "expert")
	assert.Error(t, err)

	_, err = run(t, "goal", "0")
	assert.Error(t, err)
	mustRun(t, nil, "goal", "7")

	var st app.Stats
	mustRun(t, &st, "stats")
	assert.True(t, st.Onboarded)
	assert.Equal(t, 7, st.Progression.DailyGoal)

	mustRun(t, nil, "freeze")
	_, err = run(t, "freeze")
	assert.Error(t, err)
}

func TestResetNeedsConfirmation(t *testing.T) {
	useTempState(t)

	mustRun(t, nil, "view", "card-1")
	_, err := run(t, "reset")
	assert.Error(t, err)

	mustRun(t, nil, "reset", "--yes")
	var st app.Stats
	mustRun(t, &st, "stats")
	assert.Zero(t, st.Progression.TotalCardsViewed)
}

func TestInvalidConfig(t *testing.T) {
	useTempState(t)
	t.Setenv("BRAINBITES_DATABASE_TYPE", "oracle")

	_, err := run(t, "stats")
	assert.Error(t, err)
}
