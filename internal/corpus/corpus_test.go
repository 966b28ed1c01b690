package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/introflow/replybrain/internal/common"
	"github.com/introflow/replybrain/internal/engine"
	"github.com/introflow/replybrain/internal/model"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCorpus(t, `replies:
  - text: "please remove me from your list"
    stage: NEGATIVE
  - text: "when are you free this week?"
    stage: SCHEDULING
    note: "classic scheduling ask"
`)

	replies, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, model.StageNegative, replies[0].Stage)
	assert.Equal(t, "classic scheduling ask", replies[1].Note)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errIs   error
		errMsg  string
	}{
		{
			name:    "empty replies",
			content: "replies: []\n",
			errIs:   common.ErrEmptyCorpus,
		},
		{
			name:    "invalid yaml",
			content: "replies: [\n",
			errMsg:  "not valid YAML",
		},
		{
			name:    "empty text",
			content: "replies:\n  - text: \"\"\n    stage: NEGATIVE\n",
			errMsg:  "entry 1 has empty text",
		},
		{
			name:    "unknown stage",
			content: "replies:\n  - text: \"hello\"\n    stage: MAYBE\n",
			errMsg:  `entry 1 has unknown stage "MAYBE"`,
		},
		{
			name: "duplicate text",
			content: "replies:\n" +
				"  - text: \"sounds good\"\n    stage: INTEREST\n" +
				"  - text: \"not interested\"\n    stage: NEGATIVE\n" +
				"  - text: \"sounds good\"\n    stage: SCHEDULING\n",
			errIs:  common.ErrDuplicateEntry,
			errMsg: "entry 3 duplicates entry 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeCorpus(t, tt.content))
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			if tt.errMsg != "" {
				var userErr *common.UserError
				require.True(t, errors.As(err, &userErr))
				assert.Contains(t, userErr.UserMessage, tt.errMsg)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEvaluate(t *testing.T) {
	replies := []LabeledReply{
		{Text: "please remove me from your list", Stage: model.StageNegative},
		{Text: "when are you free this week?", Stage: model.StageScheduling},
		{Text: "what does this cost?", Stage: model.StagePricing},
		// Deliberately mislabeled to force a miss.
		{Text: "who are these people?", Stage: model.StageInterest},
	}

	var calls []int
	report := Evaluate(context.Background(), engine.NewDefault(), replies, func(done int) {
		calls = append(calls, done)
	})

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Correct)
	assert.InDelta(t, 0.75, report.Accuracy(), 0.001)
	assert.False(t, report.Passing())
	assert.Equal(t, []int{1, 2, 3, 4}, calls)

	require.Len(t, report.Misses, 1)
	assert.Equal(t, model.StageInterest, report.Misses[0].Want)
	assert.Equal(t, model.StageProof, report.Misses[0].Got)

	assert.Equal(t, StageScore{Total: 1, Correct: 1}, report.PerStage[model.StageNegative])
	assert.Equal(t, StageScore{Total: 1, Correct: 0}, report.PerStage[model.StageInterest])
}

func TestEvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := Evaluate(ctx, engine.NewDefault(), []LabeledReply{
		{Text: "sounds interesting", Stage: model.StageInterest},
	}, nil)

	assert.Zero(t, report.Total)
	assert.False(t, report.Passing())
}

func TestReportAccuracyEmpty(t *testing.T) {
	var r Report
	assert.Zero(t, r.Accuracy())
	assert.False(t, r.Passing())
}
